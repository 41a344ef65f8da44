package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
)

const (
	titleDomains = `Desktop|IT|Technical|System|Network|Security|Software|Application|Database|Cloud|DevOps|QA|Test|Business|Data|Product|Project|Program|Process|Service|Support|Infrastructure|Operations`
	titleRoles   = `Engineer|Developer|Architect|Analyst|Consultant|Specialist|Manager|Director|Administrator|Coordinator|Associate|Lead|Officer|Executive`
)

var designationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Current|Present)\s+(?:Position|Role|Title|Job):\s*([A-Za-z][A-Za-z\s/&-]+)`),
	regexp.MustCompile(`(?i)\b((?:Sr\.?|Senior|Lead|Principal|Chief|Head|Junior)\s+(?:` + titleDomains + `)\s+(?:` + titleRoles + `))\b`),
	regexp.MustCompile(`(?i)\b((?:` + titleDomains + `)\s+(?:` + titleRoles + `))\b`),
}

// extractDesignation prefers a recognizer job-title entity over the header
// region, then falls back to title-shaped phrases.
func (p *Parser) extractDesignation(ctx context.Context, text string) entity.ExtractedValue {
	if p.recognizer != nil {
		ents, err := p.recognizer.Recognize(ctx, p.header(text))
		if err != nil {
			p.logger.Debug("parse.recognizer_error", "field", "designation", "error", err)
		}
		for _, e := range ents {
			if e.Label == extract.LabelJobTitle {
				if title := strings.TrimSpace(e.Text); title != "" {
					return entity.ExtractedValue{Value: title, Confidence: 0.9, Method: constants.MethodEntityLookup}
				}
			}
		}
	}

	for _, re := range designationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			if i := strings.IndexByte(title, '\n'); i >= 0 {
				title = strings.TrimSpace(title[:i])
			}
			if title != "" {
				return entity.ExtractedValue{Value: title, Confidence: 0.8, Method: constants.MethodRegex}
			}
		}
	}
	return entity.None()
}
