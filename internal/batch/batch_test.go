package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/output"
)

type stubProcessor struct {
	failSuffix string
}

func (s *stubProcessor) ProcessFile(_ context.Context, path string) (*entity.ExtractionResult, error) {
	res := &entity.ExtractionResult{File: path}
	for _, name := range entity.FieldOrder {
		res.SetField(name, entity.None())
	}
	if s.failSuffix != "" && filepath.Ext(path) == s.failSuffix {
		res.JobState = constants.JobFailed
		res.Error = "unreadable"
		return res, fmt.Errorf("read %s: unreadable", path)
	}
	res.PrimaryEmail = entity.ExtractedValue{Value: "x@y.co", Confidence: 0.9, Method: constants.MethodRegex}
	res.ConfidenceScore = 0.9
	res.JobState = constants.JobCompleted
	res.PassCount = 1
	return res, nil
}

type fixedSampler struct{ pct float64 }

func (f *fixedSampler) Percent() (float64, error) { return f.pct, nil }

type countingObserver struct {
	mu   sync.Mutex
	seen int
}

func (c *countingObserver) Observe(*entity.ExtractionResult) {
	c.mu.Lock()
	c.seen++
	c.mu.Unlock()
}

func testConfig() common.BatchConfig {
	return common.BatchConfig{
		BatchSize:        500,
		NumWorkers:       3,
		MaxMemoryPercent: 80,
		HardMemoryLimit:  90,
		ProgressEvery:    100,
	}
}

func testEngine(t *testing.T, proc Processor, sampler MemorySampler, obs ...Observer) *Engine {
	t.Helper()
	v, err := output.NewValidator()
	require.NoError(t, err)
	return NewEngine(nil, testConfig(), func() (Processor, error) { return proc, nil }, sampler, v, obs...)
}

func makeFiles(n int, failEvery int) []string {
	files := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ext := ".txt"
		if failEvery > 0 && i%failEvery == 0 {
			ext = ".bad"
		}
		files = append(files, fmt.Sprintf("resume_%03d%s", i, ext))
	}
	return files
}

func TestRunAccountsForEveryFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.json")
	sink, err := NewArraySink(out, "")
	require.NoError(t, err)

	obs := &countingObserver{}
	e := testEngine(t, &stubProcessor{failSuffix: ".bad"}, nil, obs)
	files := makeFiles(25, 5)

	m, err := e.Run(context.Background(), files, sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.Equal(t, 25, m.TotalFiles)
	assert.Equal(t, 25, m.Processed+m.Failed)
	assert.Equal(t, 5, m.Failed)
	assert.InDelta(t, 0.8, m.SuccessRate, 1e-9)
	assert.Equal(t, 25, obs.seen)

	// Failed results are persisted too, so every file has a record.
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 25)
}

func TestRunEmptyInput(t *testing.T) {
	sink, err := NewArraySink(filepath.Join(t.TempDir(), "results.json"), "")
	require.NoError(t, err)

	e := testEngine(t, &stubProcessor{}, nil)
	m, err := e.Run(context.Background(), nil, sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Equal(t, 0, m.TotalFiles)
	assert.Equal(t, 0, m.Processed+m.Failed)
}

func TestHardMemoryLimitShrinksButCompletes(t *testing.T) {
	sink, err := NewArraySink(filepath.Join(t.TempDir(), "results.json"), "")
	require.NoError(t, err)

	// Every sample is above the hard ceiling; the pool must shrink down
	// to one worker yet still finish every file.
	e := testEngine(t, &stubProcessor{}, &fixedSampler{pct: 95})
	m, err := e.Run(context.Background(), makeFiles(40, 0), sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Equal(t, 40, m.Processed)
	assert.Equal(t, 0, m.Failed)
}

func TestMirrorDirWritesPerDocumentRecords(t *testing.T) {
	dir := t.TempDir()
	mirror := filepath.Join(dir, "per_doc")
	sink, err := NewArraySink(filepath.Join(dir, "results.json"), mirror)
	require.NoError(t, err)

	e := testEngine(t, &stubProcessor{}, nil)
	_, err = e.Run(context.Background(), []string{"alpha.txt", "beta.txt"}, sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	for _, name := range []string{"alpha.json", "beta.json"} {
		raw, err := os.ReadFile(filepath.Join(mirror, name))
		require.NoError(t, err)
		var rec map[string]any
		require.NoError(t, json.Unmarshal(raw, &rec))
		assert.Equal(t, "COMPLETED", rec["job_state"])
	}
}

func TestSmallSegmentsStillAccountForEveryFile(t *testing.T) {
	sink, err := NewArraySink(filepath.Join(t.TempDir(), "results.json"), "")
	require.NoError(t, err)

	v, err := output.NewValidator()
	require.NoError(t, err)

	// A segment size smaller than the input crosses the boundary path on
	// every other record.
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.ProgressEvery = 1
	e := NewEngine(nil, cfg, func() (Processor, error) { return &stubProcessor{}, nil }, nil, v)

	m, err := e.Run(context.Background(), makeFiles(7, 0), sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Equal(t, 7, m.Processed+m.Failed)
	assert.Equal(t, 7, sink.Count())
}

func TestArraySinkProducesValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	sink, err := NewArraySink(path, "")
	require.NoError(t, err)
	require.NoError(t, sink.Write([]byte(`{"a":1}`), &entity.ExtractionResult{File: "a.txt"}))
	require.NoError(t, sink.Write([]byte(`{"b":2}`), &entity.ExtractionResult{File: "b.txt"}))
	require.NoError(t, sink.Close())
	assert.Equal(t, 2, sink.Count())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 2)
}
