package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/thywilljoshua/pdf-to-audio/internal/ai"
	"github.com/thywilljoshua/pdf-to-audio/internal/convert"
)

// Config holds run defaults populated from the environment (and an optional .env file).
// Command-line flags override every field.
type Config struct {
	CredentialsPath string // Google Cloud service account JSON
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	GoogleAPIKey    string // Gemini, only needed for --ocr gemini

	Provider     string
	Workers      int
	ChunkSize    int
	ChunkTimeout time.Duration

	OCREngine    string
	OCRLanguages string
	PdftoppmPath string
	GeminiModel  string
}

// Load reads environment variables and returns Config with defaults applied.
func Load() Config {
	// a missing .env is fine
	_ = godotenv.Load()

	return Config{
		CredentialsPath: getenv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		OpenAIAPIKey:    getenv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getenv("OPENAI_BASE_URL", ""),
		GoogleAPIKey:    getenv("GOOGLE_API_KEY", ""),

		Provider:     getenv("PDF2AUDIO_PROVIDER", "google"),
		Workers:      getenvInt("PDF2AUDIO_WORKERS", convert.DefaultWorkers()),
		ChunkSize:    getenvInt("PDF2AUDIO_CHUNK_SIZE", convert.DefaultMaxChunkSize),
		ChunkTimeout: getenvDuration("PDF2AUDIO_TIMEOUT", convert.DefaultChunkTimeout),

		OCREngine:    getenv("PDF2AUDIO_OCR", "tesseract"),
		OCRLanguages: getenv("PDF2AUDIO_OCR_LANG", "eng"),
		PdftoppmPath: getenv("PDF2AUDIO_PDFTOPPM", "pdftoppm"),
		GeminiModel:  getenv("PDF2AUDIO_GEMINI_MODEL", ai.DefaultModel),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
