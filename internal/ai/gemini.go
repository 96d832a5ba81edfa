package ai

import (
	"context"
	"errors"
	"fmt"
	"os"

	genai "google.golang.org/genai"

	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
)

// Gemini transcribes whole PDFs with a Gemini model. It implements extract.Extractor.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY")
	}
	return newGemini(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}, model)
}

func newGemini(ctx context.Context, cc *genai.ClientConfig, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

// Extract sends the PDF inline and returns the model's transcription.
func (g *Gemini) Extract(ctx context.Context, pdfPath string) (string, error) {
	if g.client == nil {
		return "", &extract.ExtractionError{Strategy: "gemini", Path: pdfPath, Err: errors.New("gemini not configured")}
	}
	b, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", &extract.ExtractionError{Strategy: "gemini", Path: pdfPath, Err: err}
	}
	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: transcribePrompt},
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: b}},
			},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, content, nil)
	if err != nil {
		return "", &extract.ExtractionError{Strategy: "gemini", Path: pdfPath, Err: fmt.Errorf("gemini API call failed: %w", err)}
	}

	text := stripCodeFences(res.Text())
	if extract.IsBlank(text) {
		return "", nil
	}
	return text, nil
}
