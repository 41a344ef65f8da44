// Package batch runs memory-bounded concurrent extraction over a set of
// files: a fixed worker pool feeds a single collector that validates,
// persists, and accounts for every result exactly once.
package batch

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/output"
)

// Processor extracts one document. Implementations must return a result
// even on failure so the batch can account for every input file.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*entity.ExtractionResult, error)
}

// Observer receives every collected result, successful or not.
type Observer interface {
	Observe(res *entity.ExtractionResult)
}

type Engine struct {
	logger       *slog.Logger
	cfg          common.BatchConfig
	newProcessor func() (Processor, error)
	sampler      MemorySampler
	validator    *output.Validator
	observers    []Observer
}

// NewEngine builds an engine. Each worker gets its own Processor from the
// factory so extraction state is never shared across goroutines. A nil
// sampler disables memory ceilings.
func NewEngine(logger *slog.Logger, cfg common.BatchConfig, newProcessor func() (Processor, error), sampler MemorySampler, validator *output.Validator, observers ...Observer) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger:       logger,
		cfg:          cfg,
		newProcessor: newProcessor,
		sampler:      sampler,
		validator:    validator,
		observers:    observers,
	}
}

// Run processes all files and streams validated records to the sink.
// Processed plus Failed in the returned metrics equals len(files) unless
// the run is aborted by a worker or sink error.
func (e *Engine) Run(ctx context.Context, files []string, sink Sink) (*Metrics, error) {
	m := newMetrics(len(files))
	if len(files) == 0 {
		m.finalize()
		return m, nil
	}

	workers := e.cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	e.logger.Info("batch.start", "files", len(files), "workers", workers)

	jobs := make(chan string)
	results := make(chan *entity.ExtractionResult, workers)
	// The collector sends here to retire a worker when memory crosses
	// the hard ceiling. Buffered so the collector never blocks.
	quit := make(chan struct{}, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error { return e.worker(gctx, id, jobs, results, quit) })
	}
	g.Go(func() error {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	collectErr := make(chan error, 1)
	go func() {
		collectErr <- e.collect(results, sink, m, quit, workers)
	}()

	workerErr := g.Wait()
	close(results)
	sinkErr := <-collectErr

	m.finalize()
	e.logger.Info("batch.done",
		"processed", m.Processed,
		"failed", m.Failed,
		"success_rate", m.SuccessRate,
		"elapsed", m.ProcessingTime,
	)
	if workerErr != nil {
		return m, workerErr
	}
	return m, sinkErr
}

func (e *Engine) worker(ctx context.Context, id int, jobs <-chan string, results chan<- *entity.ExtractionResult, quit <-chan struct{}) error {
	proc, err := e.newProcessor()
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			e.logger.Warn("batch.worker_retired", "worker", id)
			return nil
		case path, ok := <-jobs:
			if !ok {
				return nil
			}
			res, err := proc.ProcessFile(ctx, path)
			if err != nil {
				e.logger.Warn("batch.file_failed", "worker", id, "file", path, "error", err)
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// collect is the single consumer of results. It validates, writes, runs
// observers, and enforces the memory ceilings. Worker shrink is monotonic:
// the pool never grows back within a run and never drops below one worker.
func (e *Engine) collect(results <-chan *entity.ExtractionResult, sink Sink, m *Metrics, quit chan<- struct{}, workers int) error {
	live := workers
	var sinkErr error

	for res := range results {
		if sinkErr != nil {
			// Drain so workers can finish, but stop persisting.
			m.addFailed()
			continue
		}

		for _, obs := range e.observers {
			obs.Observe(res)
		}

		record, err := e.validator.ValidateResult(res)
		if err != nil {
			e.logger.Warn("batch.invalid_record", "file", res.File, "error", err)
			m.addFailed()
		} else if err := sink.Write(record, res); err != nil {
			e.logger.Error("batch.sink_error", "file", res.File, "error", err)
			m.addFailed()
			sinkErr = err
		} else if res.JobState == constants.JobCompleted {
			m.addProcessed()
		} else {
			m.addFailed()
		}

		done := m.done()
		if e.cfg.ProgressEvery > 0 && done%e.cfg.ProgressEvery == 0 {
			e.logger.Info("batch.progress", "done", done, "total", m.TotalFiles)
		}
		// Segment boundaries release accumulated garbage before the next
		// segment starts.
		if e.cfg.BatchSize > 0 && done%e.cfg.BatchSize == 0 {
			runtime.GC()
			e.logger.Info("batch.segment_done", "done", done, "total", m.TotalFiles)
		}

		live = e.checkMemory(live, quit)
	}
	return sinkErr
}

func (e *Engine) checkMemory(live int, quit chan<- struct{}) int {
	if e.sampler == nil {
		return live
	}
	pct, err := e.sampler.Percent()
	if err != nil {
		e.logger.Warn("batch.memory_sample_failed", "error", err)
		return live
	}
	switch {
	case e.cfg.HardMemoryLimit > 0 && pct >= e.cfg.HardMemoryLimit && live > 1:
		e.logger.Warn("batch.memory_hard_limit", "percent", pct, "workers", live-1)
		quit <- struct{}{}
		return live - 1
	case e.cfg.MaxMemoryPercent > 0 && pct >= e.cfg.MaxMemoryPercent:
		e.logger.Debug("batch.memory_soft_limit", "percent", pct)
		runtime.GC()
	}
	return live
}
