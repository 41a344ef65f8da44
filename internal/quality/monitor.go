// Package quality accumulates per-field extraction statistics across a
// batch run and renders them as a JSON quality report.
package quality

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

// Monitor observes extraction results as they complete. Safe for use from
// the batch collector; all methods take the internal lock.
type Monitor struct {
	logger *slog.Logger

	mu              sync.Mutex
	totalProcessed  int
	successful      int
	failed          int
	ocrUsed         int
	emptyFields     map[string]int
	fieldConfidence map[string][]float64
	skills          map[string]map[string]struct{}
	errorFiles      []string
	start           time.Time
}

func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{logger: logger}
	m.reset()
	return m
}

func (m *Monitor) reset() {
	m.totalProcessed = 0
	m.successful = 0
	m.failed = 0
	m.ocrUsed = 0
	m.emptyFields = make(map[string]int)
	m.fieldConfidence = make(map[string][]float64)
	m.skills = make(map[string]map[string]struct{})
	m.errorFiles = nil
	m.start = time.Now()
}

// Reset clears all accumulated statistics.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Observe records one result.
func (m *Monitor) Observe(res *entity.ExtractionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalProcessed++
	if res.JobState == constants.JobCompleted {
		m.successful++
	} else {
		m.failed++
		m.errorFiles = append(m.errorFiles, res.File)
	}
	if res.UsedOCR {
		m.ocrUsed++
	}

	for name, v := range res.Fields() {
		if v.IsEmpty() {
			m.emptyFields[name]++
		}
		m.fieldConfidence[name] = append(m.fieldConfidence[name], v.Confidence)
	}

	if byCat, ok := res.Skills.Value.(map[string][]string); ok {
		for cat, terms := range byCat {
			set := m.skills[cat]
			if set == nil {
				set = make(map[string]struct{})
				m.skills[cat] = set
			}
			for _, term := range terms {
				set[term] = struct{}{}
			}
		}
	}
}

// ErrorFiles returns the files recorded as failed, in observation order.
func (m *Monitor) ErrorFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.errorFiles))
	copy(out, m.errorFiles)
	return out
}

// FieldQuality summarizes one field across the run.
type FieldQuality struct {
	MeanConfidence float64 `json:"mean_confidence"`
	MinConfidence  float64 `json:"min_confidence"`
	MaxConfidence  float64 `json:"max_confidence"`
	EmptyCount     int     `json:"empty_count"`
}

// GetFieldQuality returns the aggregate stats for one field. Fields never
// observed report zeros.
func (m *Monitor) GetFieldQuality(field string) FieldQuality {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fieldQuality(field)
}

func (m *Monitor) fieldQuality(field string) FieldQuality {
	fq := FieldQuality{EmptyCount: m.emptyFields[field]}
	scores := m.fieldConfidence[field]
	if len(scores) == 0 {
		return fq
	}
	fq.MinConfidence = scores[0]
	fq.MaxConfidence = scores[0]
	var sum float64
	for _, s := range scores {
		sum += s
		if s < fq.MinConfidence {
			fq.MinConfidence = s
		}
		if s > fq.MaxConfidence {
			fq.MaxConfidence = s
		}
	}
	fq.MeanConfidence = sum / float64(len(scores))
	return fq
}

// SkillCategory is the census of one taxonomy category across the run.
type SkillCategory struct {
	Count  int      `json:"count"`
	Skills []string `json:"skills"`
}

// Report is the serializable quality report.
type Report struct {
	Timestamp string `json:"timestamp"`
	Summary   struct {
		TotalProcessed     int     `json:"total_processed"`
		Successful         int     `json:"successful_extractions"`
		Failed             int     `json:"failed_extractions"`
		SuccessRate        float64 `json:"success_rate"`
		OCRUsagePercentage float64 `json:"ocr_usage_percentage"`
		ElapsedSeconds     float64 `json:"elapsed_seconds"`
	} `json:"summary"`
	FieldAnalysis  map[string]FieldQuality `json:"field_analysis"`
	SkillsAnalysis struct {
		Categories   map[string]SkillCategory `json:"categories"`
		UniqueSkills int                      `json:"unique_skills"`
	} `json:"skills_analysis"`
	ErrorFiles []string `json:"error_files,omitempty"`
}

// BuildReport snapshots the accumulated statistics.
func (m *Monitor) BuildReport() *Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := &Report{Timestamp: time.Now().Format(time.RFC3339)}
	r.Summary.TotalProcessed = m.totalProcessed
	r.Summary.Successful = m.successful
	r.Summary.Failed = m.failed
	if m.totalProcessed > 0 {
		r.Summary.SuccessRate = float64(m.successful) / float64(m.totalProcessed) * 100
		r.Summary.OCRUsagePercentage = float64(m.ocrUsed) / float64(m.totalProcessed) * 100
	}
	r.Summary.ElapsedSeconds = time.Since(m.start).Seconds()

	r.FieldAnalysis = make(map[string]FieldQuality, len(entity.FieldOrder))
	for _, field := range entity.FieldOrder {
		r.FieldAnalysis[field] = m.fieldQuality(field)
	}

	r.SkillsAnalysis.Categories = make(map[string]SkillCategory, len(m.skills))
	unique := make(map[string]struct{})
	for cat, set := range m.skills {
		terms := make([]string, 0, len(set))
		for term := range set {
			terms = append(terms, term)
			unique[term] = struct{}{}
		}
		sort.Strings(terms)
		r.SkillsAnalysis.Categories[cat] = SkillCategory{Count: len(terms), Skills: terms}
	}
	r.SkillsAnalysis.UniqueSkills = len(unique)

	r.ErrorFiles = make([]string, len(m.errorFiles))
	copy(r.ErrorFiles, m.errorFiles)
	return r
}

// WriteReport builds the report and writes it as timestamped JSON under dir.
// Returns the path of the written file.
func (m *Monitor) WriteReport(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	report := m.BuildReport()
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("quality_report_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	m.logger.Info("quality.report_written",
		"path", path,
		"total", report.Summary.TotalProcessed,
		"success_rate", report.Summary.SuccessRate,
	)
	return path, nil
}
