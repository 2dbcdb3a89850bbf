// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver sends the finished article to the reader by email.
package deliver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// Client sends one article per call. docRef is the published document URL
// and may be empty when publishing failed; the email is sent regardless.
type Client interface {
	Deliver(ctx context.Context, payload *types.ArticlePayload, docRef string) error
}

// SMTPClient implements Client over SMTP with STARTTLS.
type SMTPClient struct {
	cfg types.DeliveryConfig
}

// NewSMTPClient builds a delivery client from configuration.
func NewSMTPClient(cfg types.DeliveryConfig) (*SMTPClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is empty")
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("recipient address is empty")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("sender address is empty")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPClient{cfg: cfg}, nil
}

// Deliver composes the article email and sends it. The dial and the SMTP
// conversation are both bounded by the configured timeout.
func (c *SMTPClient) Deliver(ctx context.Context, payload *types.ArticlePayload, docRef string) error {
	msg, err := BuildMessage(c.cfg, payload, docRef)
	if err != nil {
		return fmt.Errorf("composing email: %w", err)
	}
	if err := c.send(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

func (c *SMTPClient) send(ctx context.Context, msg []byte) error {
	addr := net.JoinHostPort(c.cfg.Host, fmt.Sprintf("%d", c.cfg.Port))

	dialer := &net.Dialer{Timeout: c.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Now().Add(c.cfg.Timeout))
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if c.cfg.Username != "" {
		auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(c.cfg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}
	return client.Quit()
}
