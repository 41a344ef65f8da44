package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

var (
	emailRe          = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	secondaryEmailRe = regexp.MustCompile(`(?i)(?:Secondary|Alternate|Other)\s+Email[:\s]*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+1[\s\-.]?\d{3}[\s\-.]?\d{3}[\s\-.]?\d{4}`),
		regexp.MustCompile(`\b1[\s\-.]\d{3}[\s\-.]?\d{3}[\s\-.]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)[\s\-.]?\d{3}[\s\-.]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[\s\-.]\d{3}[\s\-.]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	nonDigits = regexp.MustCompile(`\D`)
)

func (p *Parser) extractEmail(_ context.Context, text string) entity.ExtractedValue {
	if m := emailRe.FindString(text); m != "" {
		return entity.ExtractedValue{Value: m, Confidence: 0.9, Method: constants.MethodRegex}
	}
	return entity.None()
}

func (p *Parser) extractSecondaryEmail(_ context.Context, text string) entity.ExtractedValue {
	if m := secondaryEmailRe.FindStringSubmatch(text); m != nil {
		return entity.ExtractedValue{Value: m[1], Confidence: 0.8, Method: constants.MethodRegex}
	}
	return entity.None()
}

// extractPhone accepts the common US formats and normalizes to bare digits.
// An 11-digit number with a leading country 1 is stripped to 10.
func (p *Parser) extractPhone(_ context.Context, text string) entity.ExtractedValue {
	for _, re := range phonePatterns {
		for _, m := range re.FindAllString(text, -1) {
			digits := nonDigits.ReplaceAllString(m, "")
			switch {
			case len(digits) == 10:
				return entity.ExtractedValue{Value: digits, Confidence: 0.9, Method: constants.MethodRegex}
			case len(digits) == 11 && strings.HasPrefix(digits, "1"):
				return entity.ExtractedValue{Value: digits[1:], Confidence: 0.9, Method: constants.MethodRegex}
			}
		}
	}
	return entity.None()
}
