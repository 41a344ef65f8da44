package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/marcus-hale/resume-extract/internal/entity"
)

// Sink receives validated, encoded result records in completion order.
type Sink interface {
	Write(record []byte, res *entity.ExtractionResult) error
	Close() error
}

// ArraySink streams records into a single JSON array file, writing each
// record as it arrives instead of buffering the batch. An optional mirror
// directory additionally receives one JSON file per document.
type ArraySink struct {
	mu        sync.Mutex
	f         *os.File
	mirrorDir string
	count     int
	closed    bool
}

func NewArraySink(path, mirrorDir string) (*ArraySink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	if _, err := f.WriteString("["); err != nil {
		f.Close()
		return nil, fmt.Errorf("write output header: %w", err)
	}
	if mirrorDir != "" {
		if err := os.MkdirAll(mirrorDir, 0o755); err != nil {
			f.Close()
			return nil, fmt.Errorf("create mirror dir: %w", err)
		}
	}
	return &ArraySink{f: f, mirrorDir: mirrorDir}, nil
}

func (s *ArraySink) Write(record []byte, res *entity.ExtractionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("sink closed")
	}

	sep := ",\n"
	if s.count == 0 {
		sep = "\n"
	}
	if _, err := s.f.WriteString(sep); err != nil {
		return fmt.Errorf("write record separator: %w", err)
	}
	if _, err := s.f.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	s.count++

	if s.mirrorDir != "" {
		name := strings.TrimSuffix(filepath.Base(res.File), filepath.Ext(res.File)) + ".json"
		if err := os.WriteFile(filepath.Join(s.mirrorDir, name), record, 0o644); err != nil {
			return fmt.Errorf("write mirror record: %w", err)
		}
	}
	return nil
}

func (s *ArraySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if _, err := s.f.WriteString("\n]\n"); err != nil {
		s.f.Close()
		return fmt.Errorf("write output trailer: %w", err)
	}
	return s.f.Close()
}

// Count returns the number of records written.
func (s *ArraySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
