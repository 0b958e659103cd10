package server

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"meetscribe-go/internal/actionitem"
	"meetscribe-go/internal/media"
	"meetscribe-go/internal/pipeline"
	"meetscribe-go/internal/report"
	"meetscribe-go/internal/store"
	"meetscribe-go/internal/transcribe"
)

// allowedMIMETypes is the upload whitelist: two video containers and one
// audio container, as produced by browser recorders.
var allowedMIMETypes = map[string]bool{
	"video/webm": true,
	"video/mp4":  true,
	"audio/webm": true,
}

func (s *Server) handleRecordingUpload(c *fiber.Ctx) error {
	log := s.log.WithRequest(c).WithField("handler", "recording")
	meetingID, _ := c.Locals("meetingID").(int64)
	userID, _ := c.Locals("userID").(int64)

	file, err := c.FormFile("recording")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "no recording uploaded"})
	}
	if file.Size > int64(s.cfg.MaxUploadBytes) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "recording exceeds size limit"})
	}
	mime := file.Header.Get(fiber.HeaderContentType)
	if !allowedMIMETypes[mime] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("unsupported media type %q", mime),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unreadable upload"})
	}
	data, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unreadable upload"})
	}

	log = log.WithField("meeting_id", meetingID).WithField("upload_bytes", len(data))
	log.Info("recording upload received")

	// The run is detached from the connection context: a client that
	// disconnects mid-pipeline must not cancel transcription or lose the
	// persisted artifacts.
	res, err := s.proc.Process(context.Background(), pipeline.Upload{
		MeetingID: meetingID,
		UserID:    userID,
		Filename:  file.Filename,
		MIME:      mime,
		Data:      data,
	})
	if err != nil {
		return s.fatalResponse(c, err)
	}

	if res.Partial() {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"message":    "processing completed with errors: " + res.ErrorSummary(),
			"transcript": res.Transcript,
			"summary":    res.Summary,
			"tasks":      res.Tasks,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "recording processed",
		"transcriptLength": len(res.Transcript),
		"summaryGenerated": res.SummaryGenerated,
		"tasksGenerated":   res.TasksGenerated,
	})
}

// handleResummarize re-runs summarization over the stored transcript.
func (s *Server) handleResummarize(c *fiber.Ctx) error {
	log := s.log.WithRequest(c).WithField("handler", "summarize")
	meetingID, _ := c.Locals("meetingID").(int64)

	m, err := s.meetings.Get(c.Context(), meetingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "meeting not found"})
		}
		log.WithField("error", err.Error()).Error("meeting load failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
	if m.Transcript == nil || *m.Transcript == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no transcript for this meeting"})
	}

	res, err := s.proc.Resummarize(context.Background(), meetingID, *m.Transcript)
	if err != nil {
		return s.fatalResponse(c, err)
	}
	if res.Partial() {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"message": "summarization completed with errors: " + res.ErrorSummary(),
			"summary": res.Summary,
			"tasks":   res.Tasks,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "summarization complete",
		"summaryGenerated": res.SummaryGenerated,
		"tasksGenerated":   res.TasksGenerated,
	})
}

// handleReport streams the meeting minutes workbook.
func (s *Server) handleReport(c *fiber.Ctx) error {
	log := s.log.WithRequest(c).WithField("handler", "report")
	meetingID, _ := c.Locals("meetingID").(int64)

	m, err := s.meetings.Get(c.Context(), meetingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "meeting not found"})
		}
		log.WithField("error", err.Error()).Error("meeting load failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}

	var items []actionitem.Item
	if m.ActionItems != nil {
		items = actionitem.Parse(*m.ActionItems)
	}
	buf, err := report.Build(m, items)
	if err != nil {
		log.WithField("error", err.Error()).Error("report build failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "report generation failed"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="meeting-%d-minutes.xlsx"`, meetingID))
	return c.Send(buf.Bytes())
}

// fatalResponse maps a fatal pipeline error to its HTTP status. Raw
// subprocess stderr and upstream detail never reach the caller.
func (s *Server) fatalResponse(c *fiber.Ctx, err error) error {
	log := s.log.WithRequest(c)

	var vErr *pipeline.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": vErr.Msg})
	case errors.Is(err, pipeline.ErrMeetingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "meeting not found"})
	case errors.Is(err, transcribe.ErrUnavailable):
		// configuration problem, not a runtime service failure
		log.WithField("error", err.Error()).Error("transcription service not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "transcription service unavailable"})
	case errors.Is(err, media.ErrExtraction):
		log.WithField("error", err.Error()).Error("recording processing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "audio extraction failed"})
	case errors.Is(err, transcribe.ErrFailed):
		log.WithField("error", err.Error()).Error("recording processing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "transcription failed"})
	default:
		log.WithField("error", err.Error()).Error("recording processing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
}
