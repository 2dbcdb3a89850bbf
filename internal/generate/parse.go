// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// Model responses are free-form prose followed by a mechanical trailer:
// a METADATA block, a YOUTUBE list, and a RESOURCES list. The parser pulls
// the trailer apart with regular expressions and keeps the remainder as the
// article body. Anything that fails minimum structure is an error; the
// client turns that into a typed invalid-response failure.

var (
	metadataPattern  = regexp.MustCompile(`(?is)---\s*\n\s*METADATA:?\s*\n(.*?)\n\s*---`)
	titlePattern     = regexp.MustCompile(`(?i)Title:\s*\*?\*?([^\n*]+)`)
	categoryPattern  = regexp.MustCompile(`(?i)Category:\s*\*?\*?([^\n*\[\]]+)`)
	tagsPattern      = regexp.MustCompile(`(?i)Tags:\s*\*?\*?([^\n]+)`)
	summaryPattern   = regexp.MustCompile(`(?i)Summary:\s*\*?\*?([^\n]+)`)
	youtubePattern   = regexp.MustCompile(`(?is)\nYOUTUBE:?\s*\n(.*?)(?:\nRESOURCES:|\n---|$)`)
	resourcesPattern = regexp.MustCompile(`(?is)\nRESOURCES:?\s*\n(.*?)(?:\n---|$)`)
	urlPattern       = regexp.MustCompile(`(https?://[^\s\)]+)`)
	quotedPattern    = regexp.MustCompile(`["\*\[]([^"\*\]]+)["\*\]]`)
	firstH1Pattern   = regexp.MustCompile(`(?m)^#\s+([^\n]+)$`)
)

// trailerMarkers are stripped from the body once parsed, everything from the
// marker to the end of the response.
var trailerMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(^|\n)---\s*\n\s*METADATA:.*$`),
	regexp.MustCompile(`(?is)\nMETADATA:.*$`),
	regexp.MustCompile(`(?is)\nYOUTUBE:.*$`),
	regexp.MustCompile(`(?is)\nRESOURCES:.*$`),
}

// Parse converts raw model output into a well-typed ArticlePayload. It never
// returns a payload that fails ArticlePayload.Validate.
func Parse(content string) (*types.ArticlePayload, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty response")
	}

	p := &types.ArticlePayload{
		Category: "psychology",
	}

	meta := ""
	if m := metadataPattern.FindStringSubmatch(content); m != nil {
		meta = m[1]
	}

	if m := titlePattern.FindStringSubmatch(meta); m != nil {
		p.Title = cleanField(m[1])
	}
	if p.Title == "" {
		// Metadata missing or malformed: fall back to a Title: line
		// anywhere, then to the first H1 heading.
		if m := titlePattern.FindStringSubmatch(content); m != nil {
			p.Title = cleanField(m[1])
		} else if m := firstH1Pattern.FindStringSubmatch(content); m != nil {
			p.Title = cleanField(m[1])
		}
	}
	if p.Title == "" {
		return nil, fmt.Errorf("no title found in response")
	}

	if m := categoryPattern.FindStringSubmatch(meta); m != nil {
		p.Category = strings.ToLower(cleanField(m[1]))
	}
	if m := tagsPattern.FindStringSubmatch(meta); m != nil {
		for _, tag := range strings.Split(cleanField(m[1]), ",") {
			tag = strings.ToLower(cleanField(tag))
			if tag != "" {
				p.Tags = append(p.Tags, tag)
			}
		}
		if len(p.Tags) > 5 {
			p.Tags = p.Tags[:5]
		}
	}
	if m := summaryPattern.FindStringSubmatch(meta); m != nil {
		p.Summary = cleanField(m[1])
	}

	if m := youtubePattern.FindStringSubmatch(content); m != nil {
		p.Resources = append(p.Resources, parseResourceLines(m[1], types.ResourceVideo)...)
	}
	if m := resourcesPattern.FindStringSubmatch(content); m != nil {
		p.Resources = append(p.Resources, parseResourceLines(m[1], types.ResourceReading)...)
	}

	body := content
	for _, marker := range trailerMarkers {
		body = marker.ReplaceAllString(body, "")
	}
	p.Sections = splitSections(strings.TrimSpace(body))

	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.Metadata = map[string]string{
		"word_count":           strconv.Itoa(p.WordCount()),
		"reading_time_minutes": strconv.Itoa(p.ReadingTimeMinutes()),
	}
	return p, nil
}

// parseResourceLines extracts reference entries from a trailer list. Lines
// without a URL are skipped.
func parseResourceLines(text string, kind types.ResourceKind) []types.Resource {
	var out []types.Resource
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(strings.ToLower(line), "http") {
			continue
		}
		um := urlPattern.FindStringSubmatch(line)
		if um == nil {
			continue
		}
		url := strings.TrimRight(um[1], ".,;:")

		title := ""
		if tm := quotedPattern.FindStringSubmatch(line); tm != nil {
			title = strings.TrimSpace(tm[1])
		} else {
			title = strings.Trim(strings.Split(line, "http")[0], ` -•*[]"`)
		}
		if title == "" {
			title = url
		}

		note := ""
		if idx := strings.LastIndex(line, url); idx >= 0 {
			note = strings.Trim(line[idx+len(url):], " -")
		}

		out = append(out, types.Resource{Kind: kind, Title: title, URL: url, Note: note})
	}
	return out
}

// splitSections chunks the body on ## headings. Prose before the first
// heading becomes an unheaded section; essays without headings yield a
// single section.
func splitSections(body string) []types.Section {
	lines := strings.Split(body, "\n")
	var sections []types.Section
	heading := ""
	var buf []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if heading != "" || content != "" {
			sections = append(sections, types.Section{Heading: heading, Content: content})
		}
		buf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") {
			flush()
			heading = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return sections
}

// cleanField strips the decoration the model sometimes leaves on metadata
// values: surrounding whitespace, bold markers, and brackets.
func cleanField(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*[]")
}
