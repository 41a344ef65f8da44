// Package pipeline runs the two-pass extraction flow: a cheap fast pass
// over the leading region of the document, then a chunked quality pass for
// documents whose aggregate confidence falls below the routing threshold.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
	"github.com/marcus-hale/resume-extract/internal/parser"
)

// Config holds thresholds and behavior flags for the orchestrator.
type Config struct {
	Threshold        float64 // routing threshold, default 0.8
	FastTextBudget   int     // chars given to the fast pass, default 8000
	ChunkTokenBudget int     // quality-pass chunk size, default 512
}

type Orchestrator struct {
	logger *slog.Logger
	cfg    Config
	reader extract.DocumentReader
	parser *parser.Parser
}

func NewOrchestrator(logger *slog.Logger, cfg Config, reader extract.DocumentReader, p *parser.Parser) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.8
	}
	if cfg.FastTextBudget <= 0 {
		cfg.FastTextBudget = 8000
	}
	if cfg.ChunkTokenBudget <= 0 {
		cfg.ChunkTokenBudget = 512
	}
	return &Orchestrator{logger: logger, cfg: cfg, reader: reader, parser: p}
}

// ProcessFile reads and extracts one document. Read failures return an
// error alongside a FAILED result so callers can account for the document.
// The error carries ErrTimeout when the document deadline expired and
// ErrUnreadable otherwise.
func (o *Orchestrator) ProcessFile(ctx context.Context, path string) (*entity.ExtractionResult, error) {
	started := time.Now()
	read, err := o.reader.Read(ctx, path)
	if err != nil {
		cause := common.ErrUnreadable
		if errors.Is(err, context.DeadlineExceeded) {
			cause = common.ErrTimeout
		}
		res := failedResult(path, started, err)
		return res, fmt.Errorf("read %s: %w: %w", path, cause, err)
	}
	res := o.ProcessText(ctx, read.Text, path, read.UsedOCR)
	res.StartedAt = started
	res.FinishedAt = time.Now()
	return res, nil
}

// ProcessText runs the two-pass flow over already-read text.
func (o *Orchestrator) ProcessText(ctx context.Context, text, path string, usedOCR bool) *entity.ExtractionResult {
	fastText := text
	if len(fastText) > o.cfg.FastTextBudget {
		fastText = fastText[:o.cfg.FastTextBudget]
	}

	res := o.parser.Parse(ctx, fastText, path)
	res.UsedOCR = usedOCR
	res.PassCount = 1
	res.JobState = constants.JobFastPassDone

	if res.ConfidenceScore >= o.cfg.Threshold {
		res.JobState = constants.JobCompleted
		o.logger.Debug("twopass.fast_ok", "file", path, "confidence", res.ConfidenceScore)
		return res
	}

	res.JobState = constants.JobNeedsQualityPass
	o.logger.Debug("twopass.quality", "file", path, "confidence", res.ConfidenceScore)

	merged := res
	for _, chunk := range SplitChunks(parser.CleanText(text), o.cfg.ChunkTokenBudget) {
		chunkRes := o.parser.Parse(ctx, chunk, path)
		merged = mergeResults(merged, chunkRes)
	}
	merged.ConfidenceScore = parser.Aggregate(merged)
	merged.UsedOCR = usedOCR
	merged.PassCount = 2
	merged.JobState = constants.JobCompleted
	o.logger.Debug("twopass.quality_ok", "file", path, "confidence", merged.ConfidenceScore)
	return merged
}

// mergeResults keeps, per field, the higher-confidence value. Equal
// confidence keeps the value already held.
func mergeResults(base, next *entity.ExtractionResult) *entity.ExtractionResult {
	have := base.Fields()
	for name, candidate := range next.Fields() {
		if candidate.Confidence > have[name].Confidence {
			base.SetField(name, candidate)
		}
	}
	return base
}

func failedResult(path string, started time.Time, err error) *entity.ExtractionResult {
	res := &entity.ExtractionResult{File: path}
	for _, name := range entity.FieldOrder {
		res.SetField(name, entity.None())
	}
	res.JobState = constants.JobFailed
	res.Error = err.Error()
	res.StartedAt = started
	res.FinishedAt = time.Now()
	return res
}
