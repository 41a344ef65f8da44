// Package export renders stored extraction results as an XLSX workbook,
// one row per parsed resume.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/repository"
)

// Service is a thin façade over the results store that produces XLSX bytes.
type Service struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewService(store *repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportResultsXLSX returns an XLSX workbook for the given run. A nil run
// id exports every stored result.
func (s *Service) ExportResultsXLSX(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	start := time.Now()

	results, err := s.store.ListResults(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Resumes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"First Name",
		"Last Name",
		"Email",
		"Phone",
		"City",
		"State",
		"Work Authorization",
		"Tax Term",
		"Designation",
		"Experience",
		"Skills",
		"Confidence",
		"State of Job",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.File)
		write(2, r.FirstName.Str())
		write(3, r.LastName.Str())
		write(4, r.PrimaryEmail.Str())
		write(5, r.Phone.Str())
		write(6, r.City.Str())
		write(7, r.State.Str())
		write(8, r.WorkAuth.Str())
		write(9, r.TaxTerm.Str())
		write(10, r.Designation.Str())
		write(11, r.Experience.Str())
		write(12, truncate(flattenSkills(r.Skills), 400))
		write(13, fmt.Sprintf("%.2f", r.ConfidenceScore))
		write(14, string(r.JobState))
		write(15, truncate(r.Error, 140))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // file
	_ = f.SetColWidth(sheet, "B", "C", 16) // name
	_ = f.SetColWidth(sheet, "D", "D", 28) // email
	_ = f.SetColWidth(sheet, "E", "E", 16) // phone
	_ = f.SetColWidth(sheet, "F", "G", 14) // location
	_ = f.SetColWidth(sheet, "H", "J", 22) // auth, tax term, designation
	_ = f.SetColWidth(sheet, "L", "L", 60) // skills
	_ = f.SetColWidth(sheet, "O", "O", 40) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", runID.String(),
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// flattenSkills renders the per-category skills map as "cat: a, b; cat: c".
// Results loaded from the store carry the map decoded from JSON, so both
// shapes are accepted.
func flattenSkills(v entity.ExtractedValue) string {
	byCat, ok := v.Value.(map[string][]string)
	if !ok {
		raw, isMap := v.Value.(map[string]any)
		if !isMap {
			return ""
		}
		byCat = make(map[string][]string, len(raw))
		for cat, terms := range raw {
			list, isList := terms.([]any)
			if !isList {
				continue
			}
			out := make([]string, 0, len(list))
			for _, t := range list {
				if s, isStr := t.(string); isStr {
					out = append(out, s)
				}
			}
			byCat[cat] = out
		}
	}
	if len(byCat) == 0 {
		return ""
	}
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	parts := make([]string, 0, len(cats))
	for _, cat := range cats {
		parts = append(parts, cat+": "+strings.Join(byCat[cat], ", "))
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
