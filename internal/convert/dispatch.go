package convert

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/thywilljoshua/pdf-to-audio/internal/audio"
	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
	"github.com/thywilljoshua/pdf-to-audio/internal/tts"
)

// dispatch synthesizes every chunk through a pool of cfg.Workers goroutines.
// Workers never abort their siblings; each outcome is reported back and the
// progress bar advances in completion order. Results are indexed by chunk.
func dispatch(ctx context.Context, chunks []string, store *audio.PartStore, cfg Config) []ChunkResult {
	results := make([]ChunkResult, len(chunks))
	done := make(chan ChunkResult, len(chunks))

	go func() {
		var g errgroup.Group
		g.SetLimit(cfg.Workers)
		for i, chunk := range chunks {
			g.Go(func() error {
				done <- synthesizeChunk(ctx, i, chunk, store, cfg)
				return nil
			})
		}
		_ = g.Wait()
		close(done)
	}()

	bar := newProgressBar(cfg, len(chunks))
	for r := range done {
		results[r.Index] = r
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return results
}

func synthesizeChunk(ctx context.Context, i int, chunk string, store *audio.PartStore, cfg Config) ChunkResult {
	res := ChunkResult{Index: i, Chars: utf8.RuneCountInString(chunk)}

	if extract.IsBlank(chunk) {
		cfg.Logger.Printf("[tts] chunk %d: no text to synthesize, skipped", i+1)
		res.Status = StatusSkipped
		return res
	}
	if err := ctx.Err(); err != nil {
		return res.fail(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.ChunkTimeout)
	defer cancel()

	data, err := cfg.Synthesizer.Synthesize(callCtx, chunk, cfg.LanguageCode)
	switch {
	case errors.Is(err, tts.ErrBlankText):
		res.Status = StatusSkipped
		return res
	case errors.Is(err, tts.ErrNoAudio):
		cfg.Logger.Printf("[tts] chunk %d: No audio content received from the API.", i+1)
		return res.fail(err)
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("timed out after %s: %w", cfg.ChunkTimeout, err)
		}
		cfg.Logger.Printf("[tts] chunk %d: Error in text-to-speech conversion: %v", i+1, err)
		return res.fail(err)
	}

	if err := store.Save(i, data); err != nil {
		cfg.Logger.Printf("[audio] chunk %d: %v", i+1, err)
		return res.fail(err)
	}
	res.Status = StatusOK
	res.Bytes = len(data)
	return res
}

func (r ChunkResult) fail(err error) ChunkResult {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
	return r
}

func newProgressBar(cfg Config, total int) *progressbar.ProgressBar {
	if !cfg.Progress {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cfg.Out),
		progressbar.OptionSetDescription("Processing PDF"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(cfg.Out) }),
	)
}
