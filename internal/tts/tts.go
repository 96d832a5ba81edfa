package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBlankText is returned for whitespace-only input; nothing is sent to the provider.
	ErrBlankText = errors.New("no text to synthesize")
	// ErrNoAudio is returned when the provider answers without audio content.
	ErrNoAudio = errors.New("no audio content received")
)

// Synthesizer converts a text fragment to encoded audio (MP3).
type Synthesizer interface {
	// Synthesize passes languageCode (a BCP-47 tag such as "en-US") through to the provider.
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

// SynthesisError wraps a provider failure for one fragment.
type SynthesisError struct {
	Provider string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s text-to-speech: %v", e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

func isBlank(text string) bool { return strings.TrimSpace(text) == "" }
