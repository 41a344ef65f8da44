package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	junkChars   = regexp.MustCompile(`[^\w\s.,;:!?@#$%&*()\-+=\[\]{}<>/\\|'"]`)
)

// CleanText normalizes whitespace and strips control/exotic characters
// while preserving paragraph breaks, which the section extractors and the
// chunker rely on.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = junkChars.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
