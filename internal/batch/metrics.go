package batch

import (
	"sync"
	"time"
)

// Metrics summarizes one batch run. Processed plus Failed always equals
// TotalFiles once Finalize has been called.
type Metrics struct {
	TotalFiles     int           `json:"total_files"`
	Processed      int           `json:"processed"`
	Failed         int           `json:"failed"`
	SuccessRate    float64       `json:"success_rate"`
	ProcessingTime time.Duration `json:"processing_time"`
	FilesPerSecond float64       `json:"files_per_second"`
	OutputFile     string        `json:"output_file"`

	mu    sync.Mutex
	start time.Time
}

func newMetrics(total int) *Metrics {
	return &Metrics{TotalFiles: total, start: time.Now()}
}

func (m *Metrics) addProcessed() {
	m.mu.Lock()
	m.Processed++
	m.mu.Unlock()
}

func (m *Metrics) addFailed() {
	m.mu.Lock()
	m.Failed++
	m.mu.Unlock()
}

func (m *Metrics) done() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Processed + m.Failed
}

func (m *Metrics) finalize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessingTime = time.Since(m.start)
	if m.TotalFiles > 0 {
		m.SuccessRate = float64(m.Processed) / float64(m.TotalFiles)
	}
	if secs := m.ProcessingTime.Seconds(); secs > 0 {
		m.FilesPerSecond = float64(m.Processed+m.Failed) / secs
	}
}
