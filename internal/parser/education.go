package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

var (
	educationHeaders = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:^|\n)[ \t]*education[:\n](.*?)(?:\n\n|\z)`),
		regexp.MustCompile(`(?is)(?:^|\n)[ \t]*academic\s+background[:\n](.*?)(?:\n\n|\z)`),
		regexp.MustCompile(`(?is)(?:^|\n)[ \t]*(?:educational|academic)\s+qualifications[:\n](.*?)(?:\n\n|\z)`),
	}
	certHeaders = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:^|\n)[ \t]*(?:professional\s+|technical\s+|industry\s+)?certifications?[:\n](.*?)(?:\n\n|\z)`),
		regexp.MustCompile(`(?is)(?:^|\n)[ \t]*certificates?[:\n](.*?)(?:\n\n|\z)`),
	}

	entrySplit = regexp.MustCompile(`\n(?:[A-Z]|\d{4})`)

	degreeRe      = regexp.MustCompile(`(?i)\b(bachelor|master|phd|doctorate|associate|diploma|b\.?s\.?c?|m\.?s\.?c?|b\.?a\.?|m\.?a\.?|b\.?e\.?|m\.?e\.?|b\.?tech|m\.?tech|mba)\b[^,\n]*`)
	majorRe       = regexp.MustCompile(`(?i)(?:in|majoring in|specializing in|with a focus on)\s+([^,\n]+)`)
	institutionRe = regexp.MustCompile(`(?i)((?:[A-Za-z.'&-]+ )*(?:university|college|institute|school)(?:\s+of\s+[A-Za-z ]+)?)`)
	yearRe        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gpaRe         = regexp.MustCompile(`(?i)(?:gpa|grade point average)[:\s]+(\d\.\d{1,2})`)

	certNameRe = regexp.MustCompile(`([A-Z][A-Za-z0-9\s+.-]+(?:Certified|Certification|Certificate|Professional|Associate|Specialist|Expert|Practitioner|Architect|Administrator|Engineer|Developer|Foundation))`)
	issuerRe   = regexp.MustCompile(`(?i)(?:from|by|issued by)\s+([^,\n]+)`)
	certIDRe   = regexp.MustCompile(`(?i)(?:id|number|#)[:\s]+([A-Z0-9-]+)`)
)

// extractEducation slices the education section out of the document and
// parses each entry's sub-fields. Entry confidence grows with the number of
// populated sub-fields, capped at 0.9.
func (p *Parser) extractEducation(_ context.Context, text string) entity.ExtractedValue {
	body := firstSection(educationHeaders, text)
	if body == "" {
		return entity.None()
	}

	var entries []entity.EducationEntry
	total := 0
	for _, raw := range splitEntries(body) {
		e := entity.EducationEntry{Raw: raw}
		if m := degreeRe.FindString(raw); m != "" {
			e.Degree = strings.TrimSpace(m)
		}
		if m := majorRe.FindStringSubmatch(raw); m != nil {
			e.Major = strings.TrimSpace(m[1])
		}
		if m := institutionRe.FindStringSubmatch(raw); m != nil {
			e.Institution = strings.TrimSpace(m[1])
		}
		if m := yearRe.FindString(raw); m != "" {
			e.Year = m
		}
		if m := gpaRe.FindStringSubmatch(raw); m != nil {
			e.GPA = m[1]
		}
		if n := e.Subfields(); n > 0 {
			entries = append(entries, e)
			total += n
		}
	}
	if len(entries) == 0 {
		return entity.None()
	}
	return entity.ExtractedValue{
		Value:      entries,
		Confidence: entryConfidence(total),
		Method:     constants.MethodMultiMethod,
	}
}

// extractCertifications mirrors extractEducation for the certification
// section.
func (p *Parser) extractCertifications(_ context.Context, text string) entity.ExtractedValue {
	body := firstSection(certHeaders, text)
	if body == "" {
		return entity.None()
	}

	var certs []entity.Certification
	total := 0
	for _, raw := range splitEntries(body) {
		c := entity.Certification{Raw: raw}
		if m := certNameRe.FindStringSubmatch(raw); m != nil {
			c.Name = strings.TrimSpace(m[1])
		}
		if m := issuerRe.FindStringSubmatch(raw); m != nil {
			c.Issuer = strings.TrimSpace(m[1])
		}
		if m := yearRe.FindString(raw); m != "" {
			c.Year = m
		}
		if m := certIDRe.FindStringSubmatch(raw); m != nil {
			c.ID = m[1]
		}
		if n := c.Subfields(); n > 0 {
			certs = append(certs, c)
			total += n
		}
	}
	if len(certs) == 0 {
		return entity.None()
	}
	return entity.ExtractedValue{
		Value:      certs,
		Confidence: entryConfidence(total),
		Method:     constants.MethodMultiMethod,
	}
}

func firstSection(headers []*regexp.Regexp, text string) string {
	for _, re := range headers {
		if m := re.FindStringSubmatch(text); m != nil {
			if body := strings.TrimSpace(m[1]); body != "" {
				return body
			}
		}
	}
	return ""
}

// splitEntries breaks a section body into entries at lines that open with a
// capital letter or a year.
func splitEntries(body string) []string {
	var out []string
	start := 0
	for _, loc := range entrySplit.FindAllStringIndex(body, -1) {
		if chunk := strings.TrimSpace(body[start:loc[0]]); chunk != "" {
			out = append(out, chunk)
		}
		start = loc[0] + 1 // keep the entry's leading character
	}
	if chunk := strings.TrimSpace(body[start:]); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

func entryConfidence(subfields int) float64 {
	return min(0.9, 0.3+0.1*float64(subfields))
}
