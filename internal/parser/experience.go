package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:with\s+)?(?:over\s+)?(\d+)(\+)?\s*years?\s+(?:of\s+)?(?:industry\s+|professional\s+|relevant\s+|hands[- ]on\s+|practical\s+|working\s+|technical\s+|commercial\s+|development\s+|engineering\s+|software\s+|IT\s+|technology\s+)?(?:experience|expertise)`),
	regexp.MustCompile(`(?i)(?:with\s+)?(?:over\s+)?(\d+)(\+)?\s*years?\s+in\s+(?:the\s+)?(?:industry|field)`),
	regexp.MustCompile(`(?i)(?:with\s+)?(?:over\s+)?(\d+)(\+)?\s*yrs?\s+(?:of\s+)?(?:industry\s+)?exp(?:erience)?`),
	regexp.MustCompile(`(?i)(?:total|overall|combined)\s+(?:of\s+)?(\d+)(\+)?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)relevant\s+experience:\s*(\d+)(\+)?\s*years?`),
}

// extractExperience pulls total years of experience from the summary
// region. Values outside [0,50] are rejected; a trailing plus survives
// normalization ("12+").
func (p *Parser) extractExperience(_ context.Context, text string) entity.ExtractedValue {
	header := p.header(text)
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil || years < 0 || years > 50 {
			continue
		}
		value := m[1]
		if strings.Contains(m[0], m[1]+"+") {
			value += "+"
		}
		return entity.ExtractedValue{Value: value, Confidence: 0.9, Method: constants.MethodExperience}
	}
	return entity.None()
}
