package convert

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"time"

	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
	"github.com/thywilljoshua/pdf-to-audio/internal/tts"
)

const (
	DefaultMaxChunkSize = 5000
	DefaultChunkTimeout = 2 * time.Minute
)

// DefaultWorkers matches the usual thread pool sizing: min(32, NumCPU+4).
func DefaultWorkers() int {
	n := runtime.NumCPU() + 4
	if n > 32 {
		n = 32
	}
	return n
}

var (
	// ErrNoAudio means no chunk produced audio; no output file was written.
	ErrNoAudio = errors.New("no audio produced")
	// ErrPartial means the output was written but some chunks are missing from it.
	ErrPartial = errors.New("some chunks failed to synthesize")
)

type Config struct {
	MaxChunkSize int           // characters per chunk
	Workers      int           // concurrent synthesis calls
	ChunkTimeout time.Duration // deadline for a single synthesis call
	LanguageCode string

	Text        extract.Extractor
	OCR         extract.Extractor // nil disables the scanned-PDF fallback
	Synthesizer tts.Synthesizer

	// WorkDir is where per-chunk parts are kept until assembly.
	// Defaults to the output file's directory.
	WorkDir string

	Out      io.Writer // user-facing messages and the progress bar
	Progress bool
	Logger   *log.Logger
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ChunkResult is the outcome of one chunk.
type ChunkResult struct {
	Index  int    `json:"index"`
	Chars  int    `json:"chars"`
	Status Status `json:"status"`
	Bytes  int    `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
	Err    error  `json:"-"`
}

type Result struct {
	Source    string        `json:"source"` // "text" or "ocr"
	Chars     int           `json:"chars"`
	Chunks    []ChunkResult `json:"chunks"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Output    string        `json:"output,omitempty"`
	Bytes     int64         `json:"bytes"`
}

// Err summarizes the synthesis outcome: nil when every non-blank chunk
// succeeded, ErrPartial when some failed, ErrNoAudio when none produced audio.
func (r Result) Err() error {
	switch {
	case r.Succeeded == 0:
		return fmt.Errorf("%w: %d of %d chunks failed", ErrNoAudio, r.Failed, len(r.Chunks))
	case r.Failed > 0:
		return fmt.Errorf("%w: %d of %d chunks", ErrPartial, r.Failed, len(r.Chunks))
	}
	return nil
}

func (r *Result) tally() {
	r.Succeeded, r.Skipped, r.Failed = 0, 0, 0
	for _, c := range r.Chunks {
		switch c.Status {
		case StatusOK:
			r.Succeeded++
		case StatusSkipped:
			r.Skipped++
		default:
			r.Failed++
		}
	}
}
