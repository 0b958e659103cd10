package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is loaded once at startup and handed to components explicitly.
// Nothing outside this package reads the environment at call time.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	OpenAIAPIKey  string
	TranscribeURL string
	WhisperModel  string
	ChatModel     string
	MaxTokens     int

	FFmpegPath     string
	MaxUploadBytes int
}

const defaultMaxUploadBytes = 500 * 1024 * 1024

func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		TranscribeURL: envOr("TRANSCRIBE_URL", "https://api.openai.com/v1/audio/transcriptions"),
		WhisperModel:  envOr("WHISPER_MODEL", "whisper-1"),
		ChatModel:     envOr("CHAT_MODEL", "gpt-4o-mini"),
		MaxTokens:     envIntOr("CHAT_MAX_TOKENS", 2048),

		FFmpegPath:     envOr("FFMPEG_PATH", "ffmpeg"),
		MaxUploadBytes: envIntOr("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	// OPENAI_API_KEY is deliberately not required here: a missing key is a
	// runtime TranscriptionUnavailable condition, logged per request.
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envIntOr(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
