// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/luckysolanki/dailicle/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for pipeline triggers over HTTP",
	Long: `Serve starts an HTTP server so an external scheduler (cron, systemd
timer, workflow runner) can trigger pipeline runs.

POST /api/run triggers a run and blocks until it finishes; a run already
in flight answers 409. GET /api/outcome reports the last finished run.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	runner, closer, err := buildRunner(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closer()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(runner).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		fmt.Fprintf(os.Stderr, "Received %s, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
