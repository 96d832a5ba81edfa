package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts the embedded text layer of a PDF. Scanned (image-only)
// documents come back empty and need OCR.
type PDFText struct{}

func (PDFText) Extract(ctx context.Context, path string) (text string, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Strategy: "text", Path: path, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Strategy: "text", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f2 := p.Font(name)
				fonts[name] = &f2
			}
		}
		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", &ExtractionError{Strategy: "text", Path: path, Err: fmt.Errorf("read page %d: %w", i, err)}
		}
		b.WriteString(pageText)
	}

	if IsBlank(b.String()) {
		return "", nil
	}
	return b.String(), nil
}
