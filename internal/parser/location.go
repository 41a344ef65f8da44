package parser

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
)

var (
	addressRe       = regexp.MustCompile(`([A-Za-z][A-Za-z\s]+),\s*([A-Z]{2})\s*(\d{5}(?:-\d{4})?)`)
	zipRe           = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	filenameStateRe = regexp.MustCompile(`[- ]([A-Z]{2})[- ]`)
)

// stateCandidate is one state source with its confidence. Sources are
// evaluated highest-confidence first; order breaks ties.
type stateCandidate struct {
	value  string
	conf   float64
	method string
}

// extractLocation resolves city/state/zip. A full address line validated
// against the reference table wins outright; otherwise the recognizer,
// the zip table, fuzzy city lookup, and the filename each contribute a
// state candidate and the highest-confidence one is kept.
func (p *Parser) extractLocation(ctx context.Context, text, filePath string) (city, state, zip entity.ExtractedValue) {
	city, state, zip = entity.None(), entity.None(), entity.None()

	if m := addressRe.FindStringSubmatch(text); m != nil {
		cityName, stateID, zipCode := strings.TrimSpace(m[1]), m[2], m[3]
		if _, ok := p.geo.ByCityState(cityName, stateID); ok {
			city = entity.ExtractedValue{Value: cityName, Confidence: 0.9, Method: constants.MethodAddressPattern}
			state = entity.ExtractedValue{Value: stateID, Confidence: 0.9, Method: constants.MethodAddressPattern}
			zip = entity.ExtractedValue{Value: zipCode, Confidence: 0.9, Method: constants.MethodAddressPattern}
			return city, state, zip
		}
	}

	var cities, states []string
	if p.recognizer != nil {
		ents, err := p.recognizer.Recognize(ctx, p.header(text))
		if err != nil {
			p.logger.Debug("parse.recognizer_error", "field", "location", "error", err)
		}
		for _, e := range ents {
			if e.Label != extract.LabelPlace {
				continue
			}
			if code := constants.NormalizeState(e.Text); code != "" {
				states = append(states, code)
			} else {
				cities = append(cities, e.Text)
			}
		}
	}

	zips := zipRe.FindAllString(text, -1)

	var candidates []stateCandidate
	if len(zips) > 0 {
		if row, ok := p.geo.ByZip(strings.SplitN(zips[0], "-", 2)[0]); ok {
			candidates = append(candidates, stateCandidate{row.StateID, 0.9, constants.MethodZipDatabase})
		}
	}
	if len(cities) > 0 {
		if m, ok := p.geo.FindCityMatch(cities[0], "", "", p.cfg.FuzzyThreshold); ok {
			candidates = append(candidates, stateCandidate{m.StateID, 0.8, constants.MethodCityDatabase})
		}
	}
	if len(states) > 0 {
		candidates = append(candidates, stateCandidate{states[0], 0.7, constants.MethodEntityLookup})
	}
	if filePath != "" {
		if m := filenameStateRe.FindStringSubmatch(filepath.Base(filePath)); m != nil {
			if constants.NormalizeState(m[1]) != "" {
				candidates = append(candidates, stateCandidate{m[1], 0.6, constants.MethodFilename})
			}
		}
	}

	best := stateCandidate{}
	for _, c := range candidates {
		if c.value != "" && c.conf > best.conf {
			best = c
		}
	}
	if best.value != "" {
		state = entity.ExtractedValue{Value: best.value, Confidence: best.conf, Method: best.method}
	}

	if len(cities) > 0 {
		city = entity.ExtractedValue{Value: cities[0], Confidence: 0.7, Method: constants.MethodEntityLookup}
	}
	if len(zips) > 0 {
		zip = entity.ExtractedValue{Value: zips[0], Confidence: 0.7, Method: constants.MethodRegex}
	}
	return city, state, zip
}
