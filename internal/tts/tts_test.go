package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
)

type fakeSpeechClient struct {
	audio []byte
	err   error
	reqs  []*texttospeechpb.SynthesizeSpeechRequest
}

func (f *fakeSpeechClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: f.audio}, nil
}

func (f *fakeSpeechClient) Close() error { return nil }

func TestGoogleSynthesizeRequest(t *testing.T) {
	fake := &fakeSpeechClient{audio: []byte("ID3mp3")}
	g := newGoogle(fake, GoogleConfig{VoiceName: "de-DE-Neural2-B", SpeakingRate: 1.25})

	audio, err := g.Synthesize(context.Background(), "Guten Tag", "de-DE")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(audio) != "ID3mp3" {
		t.Errorf("audio = %q, want %q", audio, "ID3mp3")
	}
	if len(fake.reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(fake.reqs))
	}
	req := fake.reqs[0]
	if got := req.GetInput().GetText(); got != "Guten Tag" {
		t.Errorf("input = %q, want %q", got, "Guten Tag")
	}
	if got := req.GetVoice().GetLanguageCode(); got != "de-DE" {
		t.Errorf("language = %q, want %q", got, "de-DE")
	}
	if got := req.GetVoice().GetName(); got != "de-DE-Neural2-B" {
		t.Errorf("voice = %q, want %q", got, "de-DE-Neural2-B")
	}
	if got := req.GetVoice().GetSsmlGender(); got != texttospeechpb.SsmlVoiceGender_NEUTRAL {
		t.Errorf("gender = %v, want NEUTRAL", got)
	}
	if got := req.GetAudioConfig().GetAudioEncoding(); got != texttospeechpb.AudioEncoding_MP3 {
		t.Errorf("encoding = %v, want MP3", got)
	}
	if got := req.GetAudioConfig().GetSpeakingRate(); got != 1.25 {
		t.Errorf("speaking rate = %v, want 1.25", got)
	}
}

func TestGoogleBlankTextNotSent(t *testing.T) {
	fake := &fakeSpeechClient{audio: []byte("x")}
	g := newGoogle(fake, GoogleConfig{})

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := g.Synthesize(context.Background(), text, "en-US"); !errors.Is(err, ErrBlankText) {
			t.Errorf("Synthesize(%q) error = %v, want ErrBlankText", text, err)
		}
	}
	if len(fake.reqs) != 0 {
		t.Fatalf("blank text reached the service %d times", len(fake.reqs))
	}
}

func TestGoogleNoAudio(t *testing.T) {
	g := newGoogle(&fakeSpeechClient{}, GoogleConfig{})
	if _, err := g.Synthesize(context.Background(), "hello", "en-US"); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("error = %v, want ErrNoAudio", err)
	}
}

func TestGoogleServiceError(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := newGoogle(&fakeSpeechClient{err: boom}, GoogleConfig{})

	_, err := g.Synthesize(context.Background(), "hello", "en-US")
	var se *SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SynthesisError, got %v", err)
	}
	if se.Provider != "google" {
		t.Errorf("Provider = %q, want %q", se.Provider, "google")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestNewOpenAIDefaults(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
	o, err := NewOpenAI(OpenAIConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	if o.model != "tts-1" {
		t.Errorf("model = %q, want %q", o.model, "tts-1")
	}
	if o.voice != "alloy" {
		t.Errorf("voice = %q, want %q", o.voice, "alloy")
	}
}

func TestOpenAISynthesize(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	o, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", Voice: "nova", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	audio, err := o.Synthesize(context.Background(), "Hello there", "en-US")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q, want %q", audio, "mp3-bytes")
	}
	if got["input"] != "Hello there" || got["voice"] != "nova" || got["response_format"] != "mp3" {
		t.Errorf("unexpected request body: %v", got)
	}
}

func TestOpenAIServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	o, _ := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	_, err := o.Synthesize(context.Background(), "Hello", "en-US")
	var se *SynthesisError
	if !errors.As(err, &se) || se.Provider != "openai" {
		t.Fatalf("expected openai SynthesisError, got %v", err)
	}
}

func TestOpenAIBlankTextNotSent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	o, _ := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if _, err := o.Synthesize(context.Background(), "  ", "en-US"); !errors.Is(err, ErrBlankText) {
		t.Fatalf("error = %v, want ErrBlankText", err)
	}
	if calls != 0 {
		t.Fatalf("blank text reached the service %d times", calls)
	}
}
