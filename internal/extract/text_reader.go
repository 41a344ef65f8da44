package extract

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"
)

// TextReader reads plain-text resumes. It is the only reader shipped with
// the engine; PDF/DOCX/OCR readers are injected by the caller.
type TextReader struct{}

func NewTextReader() *TextReader { return &TextReader{} }

func (r *TextReader) Read(ctx context.Context, path string) (ReadResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return ReadResult{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read document: %w", err)
	}
	res := ReadResult{Text: string(data), Duration: time.Since(start)}
	if !utf8.Valid(data) {
		res.Warnings = append(res.Warnings, "document is not valid UTF-8")
	}
	return res, nil
}
