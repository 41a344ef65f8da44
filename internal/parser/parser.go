// Package parser turns cleaned resume text into an ExtractionResult. Each
// field runs an ordered strategy chain; the first strategy that produces a
// non-empty value wins and later strategies are not consulted. Strategy
// panics and errors degrade to the empty value, never a failed document.
package parser

import (
	"context"
	"log/slog"
	"sort"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
	"github.com/marcus-hale/resume-extract/internal/geo"
	"github.com/marcus-hale/resume-extract/internal/skills"
	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

// Config holds thresholds and region sizes for the field extractors.
type Config struct {
	HeaderRegion   int     // chars scanned for header-area fields, default 2000
	NameRegion     int     // chars handed to the recognizer for names, default 1000
	FuzzyThreshold float64 // city fuzzy-match floor, default 0.8
}

type Parser struct {
	logger     *slog.Logger
	cfg        Config
	geo        *geo.Table
	matcher    *skills.Matcher
	recognizer extract.EntityRecognizer
}

// NewParser builds a parser around the shared taxonomy index and geo table.
// recognizer may be nil; the pattern strategies then carry those fields.
func NewParser(
	logger *slog.Logger,
	cfg Config,
	idx *taxonomy.Index,
	table *geo.Table,
	recognizer extract.EntityRecognizer,
) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HeaderRegion <= 0 {
		cfg.HeaderRegion = 2000
	}
	if cfg.NameRegion <= 0 {
		cfg.NameRegion = 1000
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = 0.8
	}
	return &Parser{
		logger:     logger,
		cfg:        cfg,
		geo:        table,
		matcher:    skills.New(idx, logger),
		recognizer: recognizer,
	}
}

// Parse extracts every field from the document text. filePath feeds the
// resume link field and the filename-based state fallback; it may be empty.
func (p *Parser) Parse(ctx context.Context, text, filePath string) *entity.ExtractionResult {
	res := &entity.ExtractionResult{File: filePath}
	for _, name := range entity.FieldOrder {
		res.SetField(name, entity.None())
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		p.logger.Debug("parse.empty", "file", filePath)
		return res
	}

	first, last := p.recover2(ctx, "name", cleaned, p.extractName)
	res.FirstName, res.LastName = first, last

	res.PrimaryEmail = p.recover1(ctx, "email", cleaned, p.extractEmail)
	res.SecondaryEmail = p.recover1(ctx, "secondary_email", cleaned, p.extractSecondaryEmail)
	res.Phone = p.recover1(ctx, "phone", cleaned, p.extractPhone)

	city, state, zip := p.recoverLocation(ctx, cleaned, filePath)
	res.City, res.State, res.Zip = city, state, zip

	res.WorkAuth = p.recover1(ctx, "work_authorization", cleaned, p.extractWorkAuth)
	res.TaxTerm = p.recover1(ctx, "tax_term", cleaned, p.extractTaxTerm)
	res.Designation = p.recover1(ctx, "designation", cleaned, p.extractDesignation)
	res.Experience = p.recover1(ctx, "experience", cleaned, p.extractExperience)
	res.Education = p.recover1(ctx, "education", cleaned, p.extractEducation)
	res.Certifications = p.recover1(ctx, "certifications", cleaned, p.extractCertifications)

	res.Skills = p.recover1(ctx, "skills", cleaned, p.extractSkills)

	if filePath != "" {
		res.ResumeLink = entity.ExtractedValue{Value: filePath, Confidence: 1.0, Method: constants.MethodFilePath}
	}

	res.ConfidenceScore = Aggregate(res)
	p.logger.Debug("parse.ok", "file", filePath, "confidence", res.ConfidenceScore)
	return res
}

// recover1 runs a single-value strategy chain, degrading panics to None.
func (p *Parser) recover1(ctx context.Context, field, text string, fn func(context.Context, string) entity.ExtractedValue) (out entity.ExtractedValue) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("parse.field_panic", "field", field, "panic", r)
			out = entity.None()
		}
	}()
	return fn(ctx, text)
}

// recover2 is recover1 for the name pair.
func (p *Parser) recover2(ctx context.Context, field, text string, fn func(context.Context, string) (entity.ExtractedValue, entity.ExtractedValue)) (a, b entity.ExtractedValue) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("parse.field_panic", "field", field, "panic", r)
			a, b = entity.None(), entity.None()
		}
	}()
	return fn(ctx, text)
}

func (p *Parser) recoverLocation(ctx context.Context, text, filePath string) (city, state, zip entity.ExtractedValue) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("parse.field_panic", "field", "location", "panic", r)
			city, state, zip = entity.None(), entity.None(), entity.None()
		}
	}()
	return p.extractLocation(ctx, text, filePath)
}

func (p *Parser) extractSkills(_ context.Context, text string) entity.ExtractedValue {
	val, set := p.matcher.Extract(text)
	if val.IsEmpty() {
		return val
	}
	cats := make([]string, 0, len(set.ByCategory))
	for c := range set.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	val.StructuredData = map[string]any{
		"matches": set,
		"terms":   set.Flatten(cats),
	}
	return val
}

// header returns the header region of the document.
func (p *Parser) header(text string) string {
	if len(text) > p.cfg.HeaderRegion {
		return text[:p.cfg.HeaderRegion]
	}
	return text
}
