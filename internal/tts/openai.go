package tts

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIMaxInput is the longest input the speech endpoint accepts.
const OpenAIMaxInput = 4096

// OpenAIConfig holds configuration for the OpenAI speech client.
type OpenAIConfig struct {
	APIKey string
	Model  string // default tts-1
	Voice  string // default alloy

	BaseURL string // overrides https://api.openai.com/v1
}

// OpenAI implements Synthesizer using the OpenAI audio/speech endpoint.
type OpenAI struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	model := openai.SpeechModel(cfg.Model)
	if model == "" {
		model = openai.TTSModel1
	}
	voice := openai.SpeechVoice(cfg.Voice)
	if voice == "" {
		voice = openai.VoiceAlloy
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientCfg), model: model, voice: voice}, nil
}

// Synthesize returns MP3 audio. OpenAI infers the language from the text,
// so languageCode is not sent.
func (o *OpenAI) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if isBlank(text) {
		return nil, ErrBlankText
	}
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, &SynthesisError{Provider: "openai", Err: err}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, &SynthesisError{Provider: "openai", Err: err}
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}
