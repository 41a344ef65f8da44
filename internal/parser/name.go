package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
)

var introPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+is\s+an?\b`),
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+has\s+`),
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+with\s+`),
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+is\s+the\b`),
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^Full Name:[ \t]*([A-Za-z][A-Za-z .'-]+)$`),
	regexp.MustCompile(`(?m)^Name:[ \t]*([A-Za-z][A-Za-z .'-]+)$`),
	// A line that is nothing but a title-case name.
	regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:[ \t]+[A-Z][a-z.']+)+)[ \t]*$`),
}

// extractName runs the name chain: introduction phrasing, then the
// recognizer over the leading region, then capitalized-line fallback.
func (p *Parser) extractName(ctx context.Context, text string) (entity.ExtractedValue, entity.ExtractedValue) {
	for _, re := range introPatterns {
		if m := re.FindStringSubmatch(p.header(text)); m != nil {
			name := strings.TrimSpace(m[1])
			if len(name) > 1 {
				return splitName(name, 0.9, constants.MethodIntroPattern)
			}
		}
	}

	if p.recognizer != nil {
		region := text
		if len(region) > p.cfg.NameRegion {
			region = region[:p.cfg.NameRegion]
		}
		ents, err := p.recognizer.Recognize(ctx, region)
		if err != nil {
			p.logger.Debug("parse.recognizer_error", "field", "name", "error", err)
		}
		for _, e := range ents {
			if e.Label == extract.LabelPerson {
				if name := strings.TrimSpace(e.Text); name != "" {
					return splitName(name, 0.9, constants.MethodEntityLookup)
				}
			}
		}
	}

	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return splitName(name, 0.8, constants.MethodRegex)
			}
		}
	}

	return entity.None(), entity.None()
}

// splitName divides a full name into first and the remainder. A single
// token becomes the first name with an empty last name.
func splitName(full string, conf float64, method string) (entity.ExtractedValue, entity.ExtractedValue) {
	parts := strings.Fields(full)
	switch {
	case len(parts) == 0:
		return entity.None(), entity.None()
	case len(parts) == 1:
		return entity.ExtractedValue{Value: parts[0], Confidence: conf, Method: method}, entity.None()
	default:
		return entity.ExtractedValue{Value: parts[0], Confidence: conf, Method: method},
			entity.ExtractedValue{Value: strings.Join(parts[1:], " "), Confidence: conf, Method: method}
	}
}
