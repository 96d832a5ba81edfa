package convert

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/thywilljoshua/pdf-to-audio/internal/audio"
	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
)

// Run turns the PDF at pdfPath into speech written to outPath.
//
// The returned error covers conditions that stop the run (no text, cancellation,
// output I/O). Per-chunk synthesis failures do not; inspect Result.Err for those.
// outPath is only created when at least one chunk produced audio.
func Run(ctx context.Context, pdfPath, outPath string, cfg Config) (Result, error) {
	cfg = cfg.withDefaults(outPath)
	if cfg.Text == nil || cfg.Synthesizer == nil {
		return Result{}, errors.New("convert: text extractor and synthesizer are required")
	}
	if err := checkOutputDir(outPath); err != nil {
		return Result{}, err
	}

	text, source, err := extractText(ctx, pdfPath, cfg)
	if err != nil {
		return Result{}, err
	}
	res := Result{Source: source, Chars: utf8.RuneCountInString(text)}

	chunks := SplitText(text, cfg.MaxChunkSize)
	fmt.Fprintf(cfg.Out, "📄 Extracted %d characters (%s), %d chunks of up to %d\n", res.Chars, source, len(chunks), cfg.MaxChunkSize)

	store, err := audio.NewPartStore(cfg.WorkDir)
	if err != nil {
		return res, err
	}
	defer func() {
		if err := store.Cleanup(); err != nil {
			cfg.Logger.Printf("[audio] cleanup %s: %v", store.Dir, err)
		}
	}()

	res.Chunks = dispatch(ctx, chunks, store, cfg)
	res.tally()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Succeeded == 0 {
		fmt.Fprintln(cfg.Out, "No audio content received from the API.")
		return res, nil
	}

	n, err := store.Assemble(outPath, res.okIndexes())
	if err != nil {
		return res, err
	}
	res.Output, res.Bytes = outPath, n
	fmt.Fprintf(cfg.Out, "🔊 Audio content written to file %s (%d/%d chunks)\n", outPath, res.Succeeded, len(res.Chunks))
	return res, nil
}

// extractText tries the embedded text layer first and falls back to OCR
// only when that yields nothing.
func extractText(ctx context.Context, pdfPath string, cfg Config) (string, string, error) {
	text, err := cfg.Text.Extract(ctx, pdfPath)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", "", ctxErr
	}
	if err != nil {
		fmt.Fprintf(cfg.Out, "Error reading PDF: %v\n", err)
		cfg.Logger.Printf("[extract] %v", err)
	}
	if !extract.IsBlank(text) {
		return text, "text", nil
	}

	if cfg.OCR == nil {
		fmt.Fprintln(cfg.Out, "No text could be extracted from the PDF.")
		return "", "", fmt.Errorf("%w from %s", extract.ErrNoText, pdfPath)
	}

	fmt.Fprintln(cfg.Out, "PDF appears to be scanned, attempting OCR...")
	text, err = cfg.OCR.Extract(ctx, pdfPath)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", "", ctxErr
	}
	if err != nil {
		fmt.Fprintf(cfg.Out, "Error processing scanned PDF: %v\n", err)
		cfg.Logger.Printf("[ocr] %v", err)
	}
	if extract.IsBlank(text) {
		fmt.Fprintln(cfg.Out, "No text could be extracted from the PDF.")
		if err != nil {
			return "", "", fmt.Errorf("%w from %s: %w", extract.ErrNoText, pdfPath, err)
		}
		return "", "", fmt.Errorf("%w from %s", extract.ErrNoText, pdfPath)
	}
	return text, "ocr", nil
}

// checkOutputDir fails when the directory that will hold outPath is missing.
// Run never creates it.
func checkOutputDir(outPath string) error {
	dir := filepath.Dir(outPath)
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

func (c Config) withDefaults(outPath string) Config {
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = DefaultMaxChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers()
	}
	if c.ChunkTimeout <= 0 {
		c.ChunkTimeout = DefaultChunkTimeout
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Dir(outPath)
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return c
}

func (r Result) okIndexes() []int {
	var idx []int
	for _, c := range r.Chunks {
		if c.Status == StatusOK {
			idx = append(idx, c.Index)
		}
	}
	return idx
}
