package skills

import (
	"regexp"
	"strings"
)

var (
	levelPrefixes = regexp.MustCompile(`^(?:expert in|proficient in|skilled in|experienced in|specialist in|head of|director of|manager of|advanced|basic|intermediate|beginner|novice|expert|professional|senior|junior|lead|principal|chief)\s+`)
	roleSuffixes  = regexp.MustCompile(`\s+(?:expert|professional|specialist|engineer|developer|administrator|analyst|consultant|architect|manager|lead|senior|junior|associate)$`)
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	versionTail   = regexp.MustCompile(`\s+v?\d+(?:\.\d+)*$`)
	edgeJunk      = regexp.MustCompile(`^[^\w#+.]+|[^\w#+.]+$`)
)

// Normalize strips proficiency prefixes, role suffixes, parentheticals,
// trailing version numbers, and punctuation from a raw skill token. Returns
// "" when nothing usable remains.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = parenthetical.ReplaceAllString(s, "")
	for {
		next := levelPrefixes.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = roleSuffixes.ReplaceAllString(s, "")
	s = versionTail.ReplaceAllString(s, "")
	s = edgeJunk.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) < 1 || len(s) > 60 {
		return ""
	}
	return s
}
