// Package ocr recovers text from scanned PDFs: pages are rasterized to
// images and each image is run through an OCR engine.
package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
)

// Extractor implements extract.Extractor for image-only documents.
type Extractor struct {
	rasterizer *Rasterizer
	engine     Engine
	logger     *log.Logger
}

func NewExtractor(r *Rasterizer, engine Engine, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Extractor{rasterizer: r, engine: engine, logger: logger}
}

// Extract rasterizes every page into a scratch directory, recognizes the
// pages in order and concatenates their text.
func (x *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &extract.ExtractionError{Strategy: "ocr", Path: path, Err: err}
	}

	dir, err := os.MkdirTemp("", "pdf2audio-ocr-")
	if err != nil {
		return "", &extract.ExtractionError{Strategy: "ocr", Path: path, Err: err}
	}
	defer os.RemoveAll(dir)

	pages, err := x.rasterizer.Rasterize(ctx, path, dir)
	if err != nil {
		return "", &extract.ExtractionError{Strategy: "ocr", Path: path, Err: fmt.Errorf("rasterize: %w", err)}
	}
	x.logger.Printf("[ocr] rasterized %d pages", len(pages))

	var b strings.Builder
	for i, p := range pages {
		img, err := os.ReadFile(p)
		if err != nil {
			return "", &extract.ExtractionError{Strategy: "ocr", Path: path, Err: err}
		}
		text, err := x.engine.Recognize(ctx, img)
		if err != nil {
			return "", &extract.ExtractionError{Strategy: "ocr", Path: path, Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
		b.WriteString(text)
	}

	if extract.IsBlank(b.String()) {
		return "", nil
	}
	return b.String(), nil
}
