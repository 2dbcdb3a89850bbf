// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deliver

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// BuildMessage composes the full RFC 5322 message for an article. The body is
// the article rendered to HTML, followed by its resource lists and, when
// docRef is non-empty, a link to the published document.
func BuildMessage(cfg types.DeliveryConfig, payload *types.ArticlePayload, docRef string) ([]byte, error) {
	html, err := bodyHTML(payload, docRef)
	if err != nil {
		return nil, err
	}

	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", cfg.FromName), cfg.From)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", cfg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", payload.Title))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return b.Bytes(), nil
}

func bodyHTML(payload *types.ArticlePayload, docRef string) (string, error) {
	var md strings.Builder
	md.WriteString(payload.Markdown())

	var videos, readings []types.Resource
	for _, r := range payload.Resources {
		if r.Kind == types.ResourceVideo {
			videos = append(videos, r)
		} else {
			readings = append(readings, r)
		}
	}
	if len(videos) > 0 {
		md.WriteString("\n\n## Watch\n")
		for _, r := range videos {
			fmt.Fprintf(&md, "\n- [%s](%s)", r.Title, r.URL)
		}
	}
	if len(readings) > 0 {
		md.WriteString("\n\n## Go Deeper\n")
		for _, r := range readings {
			fmt.Fprintf(&md, "\n- [%s](%s)", r.Title, r.URL)
		}
	}
	if docRef != "" {
		fmt.Fprintf(&md, "\n\n---\n\n[Read this article in your library](%s)\n", docRef)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &buf); err != nil {
		return "", fmt.Errorf("rendering body: %w", err)
	}
	return buf.String(), nil
}
