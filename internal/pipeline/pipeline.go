package pipeline

import (
	"context"
	"errors"
	"strings"

	"meetscribe-go/internal/summarize"
)

// State tracks how far a single upload got through the pipeline.
type State string

const (
	StateReceived            State = "received"
	StateAudioExtracted      State = "audio_extracted"
	StateTranscribed         State = "transcribed"
	StateTranscriptPersisted State = "transcript_persisted"
	StateSummarized          State = "summarized"
	StateArtifactsPersisted  State = "artifacts_persisted"
	StateDone                State = "done"
	StateAborted             State = "aborted"
)

// ErrMeetingNotFound aborts the run before any processing starts.
var ErrMeetingNotFound = errors.New("meeting not found")

// ErrPersistence marks the non-fatal database-write failures recorded in
// Result.Errs; it never aborts a run.
var ErrPersistence = errors.New("persistence failed")

// ValidationError covers a missing or empty upload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Upload is the transient input of one pipeline run. It lives for the
// request only and is never persisted.
type Upload struct {
	MeetingID int64
	UserID    int64
	Filename  string
	MIME      string
	Data      []byte
}

// Result is the consolidated outcome of a run. Errs holds the non-fatal
// failures recorded after the transcription checkpoint.
type Result struct {
	State            State
	Transcript       string
	Summary          string
	Tasks            string
	SummaryGenerated bool
	TasksGenerated   bool
	Errs             []error
}

// Partial reports whether the run completed with degraded stages.
func (r *Result) Partial() bool { return len(r.Errs) > 0 }

// ErrorSummary concatenates the recorded non-fatal failures into one
// human-readable message. Upstream detail stays in the logs.
func (r *Result) ErrorSummary() string {
	if len(r.Errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Errs))
	for _, err := range r.Errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// Extractor produces an audio-only buffer from a recording buffer.
type Extractor interface {
	Extract(ctx context.Context, input []byte, filename string) ([]byte, string, error)
}

// Transcriber turns an audio buffer into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Summarizer runs one generation call of the given kind over a transcript.
type Summarizer interface {
	Generate(ctx context.Context, kind summarize.Kind, transcript string) (string, error)
}

// MeetingStore is the persistence target keyed by meeting identifier.
type MeetingStore interface {
	Exists(ctx context.Context, meetingID int64) (bool, error)
	SaveTranscript(ctx context.Context, meetingID int64, transcript string) error
	SaveArtifacts(ctx context.Context, meetingID int64, summary, actionItems *string) error
}
