package main

import (
	"context"

	"github.com/joho/godotenv"

	"meetscribe-go/internal/config"
	"meetscribe-go/internal/logger"
	"meetscribe-go/internal/media"
	"meetscribe-go/internal/pipeline"
	"meetscribe-go/internal/server"
	"meetscribe-go/internal/store"
	"meetscribe-go/internal/summarize"
	"meetscribe-go/internal/transcribe"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "meetscribe-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	meetings, err := store.Connect(context.Background(), cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer meetings.Close()

	// All external clients are built once here and injected; nothing else
	// constructs clients or reads the environment.
	extractor := media.NewExtractor(cfg.FFmpegPath, log)
	transcriber := transcribe.NewWhisperClient(cfg.OpenAIAPIKey, cfg.TranscribeURL, cfg.WhisperModel, log)
	summarizer := summarize.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.MaxTokens, log)
	orch := pipeline.NewOrchestrator(extractor, transcriber, summarizer, meetings, log)

	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY not set; recording uploads will fail as unavailable")
	}

	srv := server.New(cfg, orch, meetings, log)
	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := srv.Listen(addr); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}
