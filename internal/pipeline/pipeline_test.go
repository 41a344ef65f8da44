package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/extract"
	"github.com/marcus-hale/resume-extract/internal/geo"
	"github.com/marcus-hale/resume-extract/internal/parser"
	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

type stubReader struct {
	text string
	err  error
}

func (s *stubReader) Read(context.Context, string) (extract.ReadResult, error) {
	if s.err != nil {
		return extract.ReadResult{}, s.err
	}
	return extract.ReadResult{Text: s.text}, nil
}

func testOrchestrator(t *testing.T, reader extract.DocumentReader, cfg Config) *Orchestrator {
	t.Helper()
	idx, err := taxonomy.Build(&taxonomy.Vocabulary{
		Categories: map[string][]string{"programming": {"python", "java"}},
	})
	require.NoError(t, err)
	table, err := geo.Load(strings.NewReader("city,state_id,state_name,zips\nAustin,TX,Texas,78701\n"))
	require.NoError(t, err)
	p := parser.NewParser(nil, parser.Config{}, idx, table, nil)
	return NewOrchestrator(nil, cfg, reader, p)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	// Four words plus two punctuation marks.
	assert.Equal(t, 6, estimateTokens("one two, three four."))
}

func TestSplitChunksRespectsParagraphs(t *testing.T) {
	text := "para one words here\n\npara two words here\n\npara three words here"
	chunks := SplitChunks(text, 9)
	require.Len(t, chunks, 2)
	assert.Equal(t, "para one words here\n\npara two words here", chunks[0])
	assert.Equal(t, "para three words here", chunks[1])

	// An oversized paragraph still becomes a chunk of its own.
	huge := strings.Repeat("word ", 100)
	chunks = SplitChunks(huge, 10)
	require.Len(t, chunks, 1)
}

func TestFastPassCompletes(t *testing.T) {
	resume := "John Doe\njohn@example.com | 512-555-1234\nAustin, TX 78701\n\nWork Authorization: US Citizen\n\n12 years of experience with python."
	o := testOrchestrator(t, &stubReader{text: resume}, Config{Threshold: 0.5})

	res, err := o.ProcessFile(context.Background(), "doe.txt")
	require.NoError(t, err)
	assert.Equal(t, constants.JobCompleted, res.JobState)
	assert.Equal(t, 1, res.PassCount)
	assert.GreaterOrEqual(t, res.ConfidenceScore, 0.5)
}

func TestLowConfidenceRoutesToQualityPass(t *testing.T) {
	// Only an email is extractable; the aggregate lands well below 0.99.
	resume := "contact someone@example.com\n\nnothing else useful in this text"
	o := testOrchestrator(t, &stubReader{text: resume}, Config{Threshold: 0.99})

	res, err := o.ProcessFile(context.Background(), "sparse.txt")
	require.NoError(t, err)
	assert.Equal(t, constants.JobCompleted, res.JobState)
	assert.Equal(t, 2, res.PassCount)
	assert.Equal(t, "someone@example.com", res.PrimaryEmail.Str())
}

func TestQualityPassRecoversFieldBeyondFastBudget(t *testing.T) {
	// The email sits past the fast-pass budget, so only the chunked
	// quality pass can see it.
	filler := strings.Repeat("filler text without signal. ", 20)
	resume := filler + "\n\nPrimary contact hidden@example.com here"
	o := testOrchestrator(t, &stubReader{text: resume}, Config{Threshold: 0.99, FastTextBudget: 100})

	res, err := o.ProcessFile(context.Background(), "long.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, res.PassCount)
	assert.Equal(t, "hidden@example.com", res.PrimaryEmail.Str())
}

func TestReadFailureMarksFailed(t *testing.T) {
	o := testOrchestrator(t, &stubReader{err: errors.New("corrupt file")}, Config{})

	res, err := o.ProcessFile(context.Background(), "broken.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnreadable)
	assert.Equal(t, constants.JobFailed, res.JobState)
	assert.Contains(t, res.Error, "corrupt file")
}

func TestReadDeadlineMarksTimeout(t *testing.T) {
	o := testOrchestrator(t, &stubReader{err: context.DeadlineExceeded}, Config{})

	res, err := o.ProcessFile(context.Background(), "slow.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTimeout)
	assert.NotErrorIs(t, err, common.ErrUnreadable)
	assert.Equal(t, constants.JobFailed, res.JobState)
}

func TestMergeKeepsHigherConfidence(t *testing.T) {
	resumeA := "contact low@example.com somewhere"
	o := testOrchestrator(t, &stubReader{text: resumeA}, Config{})

	base := o.parser.Parse(context.Background(), "contact low@example.com somewhere", "a.txt")
	next := o.parser.Parse(context.Background(), "contact high@example.com somewhere", "a.txt")

	// Equal confidence keeps the value already held.
	merged := mergeResults(base, next)
	assert.Equal(t, "low@example.com", merged.PrimaryEmail.Str())
}
