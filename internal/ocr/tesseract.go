package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes the text in a single encoded page image.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Tesseract implements Engine with the gosseract client.
type Tesseract struct {
	languages     []string
	dpi           int
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract engine. Languages are tesseract
// traineddata names ("eng", "deu"); none means tesseract's default.
func NewTesseract(dpi int, languages ...string) *Tesseract {
	return &Tesseract{
		languages:     languages,
		dpi:           dpi,
		clientFactory: gosseract.NewClient,
	}
}

func (e *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if e.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(e.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// ParseLanguages splits a tesseract language list ("eng+deu" or "eng,deu").
func ParseLanguages(list string) []string {
	var out []string
	for _, l := range strings.FieldsFunc(list, func(r rune) bool { return r == '+' || r == ',' }) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
