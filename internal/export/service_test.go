package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/repository"
)

func storedResult(file, first string) *entity.ExtractionResult {
	res := &entity.ExtractionResult{File: file, JobState: constants.JobCompleted, ConfidenceScore: 0.87}
	for _, name := range entity.FieldOrder {
		res.SetField(name, entity.None())
	}
	res.FirstName = entity.ExtractedValue{Value: first, Confidence: 0.9, Method: constants.MethodRegex}
	res.PrimaryEmail = entity.ExtractedValue{Value: first + "@example.com", Confidence: 0.9, Method: constants.MethodRegex}
	res.Skills = entity.ExtractedValue{
		Value:      map[string][]string{"programming": {"go", "python"}},
		Confidence: 0.8,
		Method:     constants.MethodMultiMethod,
	}
	return res
}

func TestExportResultsXLSX(t *testing.T) {
	ctx := context.Background()
	store, err := repository.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	runID, err := store.BeginRun(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, store.SaveResult(ctx, runID, storedResult("bob.txt", "Bob")))
	require.NoError(t, store.SaveResult(ctx, runID, storedResult("alice.txt", "Alice")))

	raw, err := NewService(store, nil).ExportResultsXLSX(ctx, runID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Resumes")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "File", rows[0][0])
	assert.Equal(t, "First Name", rows[0][1])

	// Store order is by file name.
	assert.Equal(t, "alice.txt", rows[1][0])
	assert.Equal(t, "Alice", rows[1][1])
	assert.Equal(t, "Alice@example.com", rows[1][3])
	assert.Contains(t, rows[1][11], "programming: go, python")
	assert.Equal(t, "bob.txt", rows[2][0])
}

func TestFlattenSkillsShapes(t *testing.T) {
	direct := entity.ExtractedValue{Value: map[string][]string{
		"devops":      {"docker"},
		"programming": {"go"},
	}}
	assert.Equal(t, "devops: docker; programming: go", flattenSkills(direct))

	decoded := entity.ExtractedValue{Value: map[string]any{
		"programming": []any{"go", "python"},
	}}
	assert.Equal(t, "programming: go, python", flattenSkills(decoded))

	assert.Empty(t, flattenSkills(entity.None()))
}
