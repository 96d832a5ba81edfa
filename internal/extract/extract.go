// Package extract recovers plain text from PDF documents.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoText reports an extraction that succeeded but recovered no readable text.
var ErrNoText = errors.New("no text extracted")

// Extractor returns the plain text of the document at path, pages in order.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractionError is returned when a strategy cannot produce text for a document.
type ExtractionError struct {
	Strategy string // "text", "ocr", "gemini"
	Path     string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction of %s: %v", e.Strategy, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsBlank reports whether s has no printable content.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }
