package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

var workAuthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Work Auth|Work Authorization|Authorization|Visa Status|Visa)[:\s]+(?:is\s+)?-?\s*([A-Za-z0-9\-\s]+)`),
	regexp.MustCompile(`(?i)(?:Citizenship|Citizen)[:\s]+(?:is\s+)?-?\s*([A-Za-z\s]+)`),
	regexp.MustCompile(`(?i)Status[:\s]+(?:is\s+)?-?\s*([A-Za-z0-9\-\s]+)`),
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractWorkAuth scans the header region for authorization statements and
// normalizes known visa mentions to their canonical labels. Unrecognized
// mentions are kept title-cased at lower confidence.
func (p *Parser) extractWorkAuth(_ context.Context, text string) entity.ExtractedValue {
	header := p.header(text)
	for _, re := range workAuthPatterns {
		m := re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		if raw == "" {
			continue
		}
		// The capture is greedy; only the leading phrase names the status.
		if i := strings.IndexByte(raw, '\n'); i >= 0 {
			raw = strings.TrimSpace(raw[:i])
		}
		if label := constants.NormalizeVisa(raw); label != "" {
			return entity.ExtractedValue{Value: label, Confidence: 0.9, Method: constants.MethodRegex}
		}
		if len(raw) <= 40 {
			return entity.ExtractedValue{Value: titleCase(raw), Confidence: 0.8, Method: constants.MethodRegex}
		}
	}
	return entity.None()
}

// extractTaxTerm matches engagement terms in the header region. Terms of
// four characters or fewer require word boundaries so "w2" never fires
// inside a longer token.
func (p *Parser) extractTaxTerm(_ context.Context, text string) entity.ExtractedValue {
	header := strings.ToLower(p.header(text))
	for _, term := range constants.TaxTerms {
		if len(term) <= 4 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
			if !re.MatchString(header) {
				continue
			}
		} else if !strings.Contains(header, term) {
			continue
		}
		return entity.ExtractedValue{Value: strings.ToUpper(term), Confidence: 0.9, Method: constants.MethodRegex}
	}
	return entity.None()
}
