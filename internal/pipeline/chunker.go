package pipeline

import (
	"regexp"
	"strings"
)

var punctRe = regexp.MustCompile(`[^\w\s]`)

// estimateTokens approximates the token cost of a span as its word count
// plus its punctuation count.
func estimateTokens(s string) int {
	return len(strings.Fields(s)) + len(punctRe.FindAllString(s, -1))
}

// SplitChunks breaks text into paragraph-aligned chunks whose estimated
// token count stays under budget. Paragraphs are never split: one that
// alone exceeds the budget becomes its own chunk.
func SplitChunks(text string, budget int) []string {
	paras := strings.Split(text, "\n\n")
	var chunks []string
	var current []string
	length := 0

	for _, para := range paras {
		if strings.TrimSpace(para) == "" {
			continue
		}
		cost := estimateTokens(para)
		if length+cost > budget && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = current[:0]
			length = 0
		}
		current = append(current, para)
		length += cost
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}
	return chunks
}
