// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"github.com/luckysolanki/dailicle/pkg/types"
)

const systemPrompt = `You are a brilliant writer and deep thinker. You write like the best
essayists: clear, engaging, profound. Your writing flows naturally, never
formulaic. You explore ideas with genuine curiosity and intellectual depth,
using vivid examples, stories, and analogies. Write for someone intelligent
but busy. Always obey the user's last message as the primary instruction.`

const userPromptTemplate = `Write a deeply researched, eloquent longform essay of roughly %d words.

THE CRAFT
- Flowing prose. No numbered sections, no "Here are 5 tips", no headers
  called "Introduction" or "Conclusion".
- Start with a vivid scene, a paradox, or a question that pulls the reader in.
- Weave evidence in naturally as part of the story.
- Use concrete examples, mini-stories, and analogies anyone can follow.
- Write with warmth, wit, and personality.

Pick a fresh topic across domains such as psychology, decision-making,
productivity, communication, relationships, creativity, learning, or
systems-thinking.

AT THE VERY END, append this exact format (it is extracted mechanically):

---
METADATA:
Title: [Your title]
Category: [One of: psychology, decision-making, productivity, communication, relationships, creativity, learning, systems-thinking]
Tags: [3-5 relevant tags]
Summary: [One sentence core insight]
---

YOUTUBE:
- "Video Title" by Channel: https://youtube.com/watch?v=xxxxx - Why worth watching

RESOURCES:
- "Title" by Author (Year): https://... - One line why`

// BuildPrompt composes the user prompt for one generation call: the optional
// exclusion block, the optional caller seed, then the essay instructions.
func BuildPrompt(req types.GenerationRequest, targetWords int) string {
	if targetWords <= 0 {
		targetWords = 5000
	}

	var parts []string
	if block := exclusionBlock(req); block != "" {
		parts = append(parts, block)
	}
	if seed := strings.TrimSpace(req.Seed); seed != "" {
		parts = append(parts, fmt.Sprintf("TOPIC SEED: write about %q or something closely related.", seed))
	}
	parts = append(parts, fmt.Sprintf(userPromptTemplate, targetWords))
	return strings.Join(parts, "\n\n")
}

// exclusionBlock renders the topic diversity rules from the exclusion lists.
// Returns "" when there is nothing to exclude (first run or empty history).
func exclusionBlock(req types.GenerationRequest) string {
	if len(req.ExcludedTitles) == 0 && len(req.ExcludedCategories) == 0 && len(req.ExcludedTags) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## IMPORTANT - Topic Diversity Requirements\n")
	b.WriteString("To ensure variety, follow these rules:\n")
	if len(req.ExcludedCategories) > 0 {
		fmt.Fprintf(&b, "- AVOID these categories (used recently): %s\n",
			strings.Join(req.ExcludedCategories, ", "))
	}
	if len(req.ExcludedTitles) > 0 {
		fmt.Fprintf(&b, "- AVOID these past topics: %s\n",
			strings.Join(req.ExcludedTitles, "; "))
	}
	if len(req.ExcludedTags) > 0 {
		fmt.Fprintf(&b, "- AVOID focusing heavily on these recently covered tags: %s\n",
			strings.Join(req.ExcludedTags, ", "))
	}
	b.WriteString("\nChoose a FRESH topic from an UNDERREPRESENTED category.")
	return b.String()
}
