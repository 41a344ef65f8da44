package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marcus-hale/resume-extract/internal/batch"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/extract"
	"github.com/marcus-hale/resume-extract/internal/output"
	"github.com/marcus-hale/resume-extract/internal/parser"
	"github.com/marcus-hale/resume-extract/internal/pipeline"
	"github.com/marcus-hale/resume-extract/internal/quality"
	"github.com/marcus-hale/resume-extract/internal/repository"
)

var (
	runDir       string
	runOut       string
	runPerDocDir string
	runDB        string
	runReportDir string
	runWorkers   int
	runThreshold float64

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "extract every resume in a directory",
		RunE:  runBatch,
	}
)

func init() {
	runCmd.Flags().StringVar(&runDir, "dir", "", "directory of resume files (required)")
	runCmd.Flags().StringVar(&runOut, "out", "", "results JSON path (default: <dir parent>/results.json)")
	runCmd.Flags().StringVar(&runPerDocDir, "per-doc-dir", "", "also write one JSON file per resume into this directory")
	runCmd.Flags().StringVar(&runDB, "db", "", "SQLite path to persist results; use :memory: for a throwaway store")
	runCmd.Flags().StringVar(&runReportDir, "report-dir", "", "write a quality report JSON into this directory")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "worker count (default: NUM_WORKERS env or CPU-based)")
	runCmd.Flags().Float64Var(&runThreshold, "threshold", 0, "fast-pass confidence threshold (default: FAST_CONFIDENCE_THRESHOLD env or 0.8)")
	_ = runCmd.MarkFlagRequired("dir")
}

// timeoutProcessor applies a per-document deadline. Zero duration passes
// the context through unchanged.
type timeoutProcessor struct {
	inner   batch.Processor
	timeout time.Duration
}

func (t *timeoutProcessor) ProcessFile(ctx context.Context, path string) (*entity.ExtractionResult, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.inner.ProcessFile(ctx, path)
}

// storeObserver mirrors every collected result into the SQLite store.
type storeObserver struct {
	ctx    context.Context
	store  *repository.Store
	runID  uuid.UUID
	logger *slog.Logger
}

func (o *storeObserver) Observe(res *entity.ExtractionResult) {
	if err := o.store.SaveResult(o.ctx, o.runID, res); err != nil {
		o.logger.Error("store.save_failed", "file", res.File, "error", err)
	}
}

func runBatch(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	ctx := cmd.Context()

	cfg := common.LoadConfig()
	if runWorkers > 0 {
		cfg.Batch.NumWorkers = runWorkers
	}
	if runThreshold > 0 {
		cfg.Pipeline.FastConfidenceThreshold = runThreshold
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := collectFiles(runDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files found under %s", runDir)
	}

	if runOut == "" {
		runOut = filepath.Join(filepath.Dir(runDir), "results.json")
	}

	idx, table, err := loadTables()
	if err != nil {
		return err
	}

	validator, err := output.NewValidator()
	if err != nil {
		return fmt.Errorf("build result validator: %w", err)
	}

	monitor := quality.NewMonitor(logger)
	observers := []batch.Observer{monitor}

	var store *repository.Store
	var runID uuid.UUID
	if runDB != "" {
		store, err = repository.Open(ctx, runDB, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err = store.BeginRun(ctx, len(files))
		if err != nil {
			return err
		}
		observers = append(observers, &storeObserver{ctx: ctx, store: store, runID: runID, logger: logger})
	}

	newProcessor := func() (batch.Processor, error) {
		p := parser.NewParser(logger, parser.Config{
			HeaderRegion:   cfg.Pipeline.HeaderRegion,
			FuzzyThreshold: 0.8,
		}, idx, table, nil)
		o := pipeline.NewOrchestrator(logger, pipeline.Config{
			Threshold:        cfg.Pipeline.FastConfidenceThreshold,
			FastTextBudget:   cfg.Pipeline.FastTextBudget,
			ChunkTokenBudget: cfg.Pipeline.ChunkTokenBudget,
		}, extract.NewTextReader(), p)
		return &timeoutProcessor{inner: o, timeout: cfg.Pipeline.ExtractTimeout}, nil
	}

	sampler, err := batch.NewProcMemory()
	if err != nil {
		logger.Warn("batch.no_memory_sampler", "error", err)
		sampler = nil
	}

	sink, err := batch.NewArraySink(runOut, runPerDocDir)
	if err != nil {
		return err
	}

	engine := batch.NewEngine(logger, cfg.Batch, newProcessor, samplerOrNil(sampler), validator, observers...)
	metrics, runErr := engine.Run(ctx, files, sink)
	if err := sink.Close(); err != nil {
		logger.Error("batch.sink_close_failed", "error", err)
	}
	if store != nil {
		if err := store.FinishRun(ctx, runID, metrics.Processed, metrics.Failed); err != nil {
			logger.Error("store.finish_run_failed", "error", err)
		}
	}
	if runReportDir != "" {
		if _, err := monitor.WriteReport(runReportDir); err != nil {
			logger.Error("quality.report_failed", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	metrics.OutputFile = runOut
	summary, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(summary))
	return nil
}

// samplerOrNil keeps a typed-nil *ProcMemory from sneaking into the
// MemorySampler interface.
func samplerOrNil(p *batch.ProcMemory) batch.MemorySampler {
	if p == nil {
		return nil
	}
	return p
}

// collectFiles walks dir for .txt resumes in sorted order.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
