package extract

import (
	"context"
	"time"
)

// DocumentReader is Stage 1: file -> text. Implementations decode a resume
// file (plain text, PDF, DOCX, scanned image) and report whether OCR was
// needed to recover the text.
type DocumentReader interface {
	Read(ctx context.Context, path string) (ReadResult, error)
}

type ReadResult struct {
	Text     string
	UsedOCR  bool
	Duration time.Duration
	Warnings []string
}

// Entity labels produced by recognizers.
const (
	LabelPerson   = "PERSON"
	LabelPlace    = "GPE"
	LabelJobTitle = "JOB_TITLE"
)

// Entity is one recognized span.
type Entity struct {
	Label string
	Text  string
	Start int
	End   int
}

// EntityRecognizer is the named-entity collaborator used by the name,
// location, and designation extractors. A nil recognizer is valid; the
// extractors then rely on their pattern strategies alone.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}
