package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"meetscribe-go/internal/config"
	"meetscribe-go/internal/logger"
	"meetscribe-go/internal/pipeline"
	"meetscribe-go/internal/store"
)

// Processor is the pipeline surface the handlers drive.
type Processor interface {
	Process(ctx context.Context, up pipeline.Upload) (*pipeline.Result, error)
	Resummarize(ctx context.Context, meetingID int64, transcript string) (*pipeline.Result, error)
}

// MeetingReader is the store surface the non-pipeline handlers need.
type MeetingReader interface {
	Get(ctx context.Context, meetingID int64) (*store.Meeting, error)
	IsMember(ctx context.Context, spaceID, userID int64) (bool, error)
}

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	proc     Processor
	meetings MeetingReader
	log      *logger.Logger
}

func New(cfg *config.Config, proc Processor, meetings MeetingReader, log *logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.MaxUploadBytes + 1024*1024,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, proc: proc, meetings: meetings, log: log}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api", s.requireSession)
	scoped := api.Group("/spaces/:spaceID/meetings/:meetingID", s.requireMembership)
	scoped.Post("/recording", s.handleRecordingUpload)
	scoped.Post("/summarize", s.handleResummarize)
	scoped.Get("/report", s.handleReport)

	return s
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
