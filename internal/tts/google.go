package tts

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// speechClient is the subset of the Cloud TTS client used here.
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GoogleConfig holds configuration for the Google Cloud Text-to-Speech client.
type GoogleConfig struct {
	// CredentialsFile is a service account JSON key. Empty means Application Default Credentials.
	CredentialsFile string
	VoiceName       string  // e.g. "en-US-Neural2-C"; empty lets the service pick by language
	SpeakingRate    float64 // 0 keeps the service default (1.0)
}

// Google implements Synthesizer using Google Cloud Text-to-Speech.
type Google struct {
	client       speechClient
	voiceName    string
	speakingRate float64
}

// NewGoogle dials the Text-to-Speech service.
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	c, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return newGoogle(c, cfg), nil
}

func newGoogle(c speechClient, cfg GoogleConfig) *Google {
	return &Google{client: c, voiceName: cfg.VoiceName, speakingRate: cfg.SpeakingRate}
}

// Synthesize converts text to MP3 audio with a neutral voice in languageCode.
func (g *Google) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if isBlank(text) {
		return nil, ErrBlankText
	}
	resp, err := g.client.SynthesizeSpeech(ctx, g.request(text, languageCode))
	if err != nil {
		return nil, &SynthesisError{Provider: "google", Err: err}
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, ErrNoAudio
	}
	return resp.GetAudioContent(), nil
}

func (g *Google) request(text, languageCode string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         g.voiceName,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  g.speakingRate,
		},
	}
}

func (g *Google) Close() error { return g.client.Close() }
