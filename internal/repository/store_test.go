package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(file string, state constants.JobState) *entity.ExtractionResult {
	res := &entity.ExtractionResult{File: file, JobState: state, ConfidenceScore: 0.85}
	for _, name := range entity.FieldOrder {
		res.SetField(name, entity.None())
	}
	res.FirstName = entity.ExtractedValue{Value: "Jane", Confidence: 0.9, Method: constants.MethodRegex}
	return res
}

func TestSaveAndGetResult(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 1)
	require.NoError(t, err)

	res := sampleResult("jane.txt", constants.JobCompleted)
	require.NoError(t, s.SaveResult(ctx, runID, res))
	require.NotEqual(t, uuid.Nil, res.JobID)

	got, err := s.GetResult(ctx, res.JobID)
	require.NoError(t, err)
	assert.Equal(t, "jane.txt", got.File)
	assert.Equal(t, constants.JobCompleted, got.JobState)
	assert.Equal(t, "Jane", got.FirstName.Str())
	assert.InDelta(t, 0.85, got.ConfidenceScore, 1e-9)
}

func TestGetMissingResult(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetResult(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveResultUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	runID, err := s.BeginRun(ctx, 1)
	require.NoError(t, err)

	res := sampleResult("jane.txt", constants.JobNeedsQualityPass)
	require.NoError(t, s.SaveResult(ctx, runID, res))

	res.JobState = constants.JobCompleted
	res.PassCount = 2
	require.NoError(t, s.SaveResult(ctx, runID, res))

	got, err := s.GetResult(ctx, res.JobID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobCompleted, got.JobState)
	assert.Equal(t, 2, got.PassCount)

	list, err := s.ListResults(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListResultsOrderedByFile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	runID, err := s.BeginRun(ctx, 3)
	require.NoError(t, err)

	for _, f := range []string{"charlie.txt", "alpha.txt", "bravo.txt"} {
		require.NoError(t, s.SaveResult(ctx, runID, sampleResult(f, constants.JobCompleted)))
	}

	list, err := s.ListResults(ctx, runID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha.txt", list[0].File)
	assert.Equal(t, "bravo.txt", list[1].File)
	assert.Equal(t, "charlie.txt", list[2].File)
}

func TestCountByState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	runID, err := s.BeginRun(ctx, 3)
	require.NoError(t, err)

	require.NoError(t, s.SaveResult(ctx, runID, sampleResult("a.txt", constants.JobCompleted)))
	require.NoError(t, s.SaveResult(ctx, runID, sampleResult("b.txt", constants.JobCompleted)))
	require.NoError(t, s.SaveResult(ctx, runID, sampleResult("c.txt", constants.JobFailed)))

	counts, err := s.CountByState(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[constants.JobCompleted])
	assert.Equal(t, 1, counts[constants.JobFailed])

	require.NoError(t, s.FinishRun(ctx, runID, 2, 1))
}
