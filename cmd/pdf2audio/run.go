package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-to-audio/internal/ai"
	"github.com/thywilljoshua/pdf-to-audio/internal/config"
	"github.com/thywilljoshua/pdf-to-audio/internal/convert"
	"github.com/thywilljoshua/pdf-to-audio/internal/extract"
	"github.com/thywilljoshua/pdf-to-audio/internal/ocr"
	"github.com/thywilljoshua/pdf-to-audio/internal/tts"
)

func runCmd(cfg config.Config) *cobra.Command {
	var provider string
	var credentials string
	var voice string
	var speakingRate float64
	var chunkSize int
	var workers int
	var timeout time.Duration
	var ocrEngine string
	var ocrLang string
	var dpi int
	var pdftoppm string
	var geminiModel string
	var strict bool
	var quiet bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run <input.pdf> <output.mp3> <language_code>",
		Short: "Extract the text of a PDF (OCR for scans) and synthesize it to an MP3 file",
		Long: `Extract the text of a PDF (OCR for scans) and synthesize it to an MP3 file.

Speech provider credentials are checked before the PDF is read, so a missing
or invalid key fails the run even when the document has no text.`,
		Example: `  pdf2audio run book.pdf book.mp3 en-US
  pdf2audio run scan.pdf scan.mp3 de-DE --ocr-lang deu --workers 4`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfPath, outPath, lang := args[0], args[1], args[2]
			provider = strings.ToLower(provider)
			ocrEngine = strings.ToLower(ocrEngine)
			if err := validateChoice("provider", provider, "google", "openai"); err != nil {
				return err
			}
			if err := validateChoice("ocr", ocrEngine, "tesseract", "gemini", "off"); err != nil {
				return err
			}
			// arguments are fine from here on; failures are not usage problems
			cmd.SilenceUsage = true

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

			var synth tts.Synthesizer
			switch provider {
			case "openai":
				o, err := tts.NewOpenAI(tts.OpenAIConfig{
					APIKey:  cfg.OpenAIAPIKey,
					Voice:   voice,
					BaseURL: cfg.OpenAIBaseURL,
				})
				if err != nil {
					return err
				}
				synth = o
				if !cmd.Flags().Changed("chunk-size") && chunkSize > tts.OpenAIMaxInput {
					chunkSize = tts.OpenAIMaxInput
				}
			default:
				g, err := tts.NewGoogle(ctx, tts.GoogleConfig{
					CredentialsFile: credentials,
					VoiceName:       voice,
					SpeakingRate:    speakingRate,
				})
				if err != nil {
					return err
				}
				defer g.Close()
				synth = g
			}

			var fallback extract.Extractor
			switch ocrEngine {
			case "gemini":
				g, err := ai.NewGemini(ctx, cfg.GoogleAPIKey, geminiModel)
				if err != nil {
					return err
				}
				fallback = g
			case "tesseract":
				fallback = ocr.NewExtractor(
					ocr.NewRasterizer(pdftoppm, dpi),
					ocr.NewTesseract(dpi, ocr.ParseLanguages(ocrLang)...),
					logger,
				)
			}

			res, err := convert.Run(ctx, pdfPath, outPath, convert.Config{
				MaxChunkSize: chunkSize,
				Workers:      workers,
				ChunkTimeout: timeout,
				LanguageCode: lang,
				Text:         extract.PDFText{},
				OCR:          fallback,
				Synthesizer:  synth,
				Out:          out,
				Progress:     !quiet,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(res, "", "  ")
				fmt.Fprintln(out, string(b))
			}
			return outcome(res, strict, out)
		},
	}
	cmd.Flags().StringVar(&provider, "provider", cfg.Provider, "speech provider: google|openai")
	cmd.Flags().StringVar(&credentials, "credentials", cfg.CredentialsPath, "Google Cloud service account JSON (default: GOOGLE_APPLICATION_CREDENTIALS)")
	cmd.Flags().StringVar(&voice, "voice", "", "provider voice name (e.g. en-US-Neural2-C, or alloy for openai)")
	cmd.Flags().Float64Var(&speakingRate, "speaking-rate", 0, "Google speaking rate, 0.25-4.0 (0 = service default)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", cfg.ChunkSize, "maximum characters per synthesis request")
	cmd.Flags().IntVar(&workers, "workers", cfg.Workers, "concurrent synthesis requests")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.ChunkTimeout, "deadline for each synthesis request")
	cmd.Flags().StringVar(&ocrEngine, "ocr", cfg.OCREngine, "OCR fallback for scanned PDFs: tesseract|gemini|off")
	cmd.Flags().StringVar(&ocrLang, "ocr-lang", cfg.OCRLanguages, "tesseract languages, e.g. eng or eng+deu")
	cmd.Flags().IntVar(&dpi, "dpi", 300, "rasterization resolution for OCR")
	cmd.Flags().StringVar(&pdftoppm, "pdftoppm", cfg.PdftoppmPath, "path to the poppler pdftoppm binary")
	cmd.Flags().StringVar(&geminiModel, "gemini-model", cfg.GeminiModel, "Gemini model used by --ocr gemini")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any chunk fails to synthesize")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the per-chunk result as JSON")
	return cmd
}

// outcome maps the aggregate synthesis result to the command's exit status.
// Missing chunks are reported but only fail the command with --strict;
// a run that produced no audio at all always fails.
func outcome(res convert.Result, strict bool, out io.Writer) error {
	err := res.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, convert.ErrNoAudio) || strict {
		return err
	}
	fmt.Fprintf(out, "⚠️  %v; the output skips them\n", err)
	return nil
}

func validateChoice(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q (want %s)", name, value, strings.Join(allowed, "|"))
}
