package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"meetscribe-go/internal/logger"
	"meetscribe-go/internal/summarize"
)

// Orchestrator sequences extraction, transcription and summarization for
// one uploaded recording and aggregates partial failures. All collaborators
// are injected at construction from process-wide configuration.
type Orchestrator struct {
	extractor   Extractor
	transcriber Transcriber
	summarizer  Summarizer
	meetings    MeetingStore
	log         *logger.Logger
}

func NewOrchestrator(extractor Extractor, transcriber Transcriber, summarizer Summarizer, meetings MeetingStore, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		extractor:   extractor,
		transcriber: transcriber,
		summarizer:  summarizer,
		meetings:    meetings,
		log:         log,
	}
}

// Process runs the full pipeline for one upload.
//
// Meeting lookup, extraction and transcription are the fatal checkpoint:
// any failure there aborts with an error and no downstream work. From the
// transcript onward, failures accumulate in Result.Errs instead of
// aborting, and the run persists whatever it managed to produce.
func (o *Orchestrator) Process(ctx context.Context, up Upload) (*Result, error) {
	log := o.log.WithMeeting(up.MeetingID).WithField("component", "pipeline")
	res := &Result{State: StateReceived}

	if len(up.Data) == 0 {
		res.State = StateAborted
		return res, &ValidationError{Msg: "no recording uploaded"}
	}
	exists, err := o.meetings.Exists(ctx, up.MeetingID)
	if err != nil {
		res.State = StateAborted
		return res, fmt.Errorf("meeting lookup: %w", err)
	}
	if !exists {
		res.State = StateAborted
		return res, ErrMeetingNotFound
	}

	audio, audioName, err := o.extractor.Extract(ctx, up.Data, up.Filename)
	if err != nil {
		log.WithField("error", err.Error()).Error("audio extraction failed")
		res.State = StateAborted
		return res, err
	}
	res.State = StateAudioExtracted
	log.WithField("audio_bytes", len(audio)).Info("audio extracted")

	transcript, err := o.transcriber.Transcribe(ctx, audio, audioName)
	if err != nil {
		// no transcript means nothing downstream can run
		log.WithField("error", err.Error()).Error("transcription failed")
		res.State = StateAborted
		return res, err
	}
	res.State = StateTranscribed
	res.Transcript = transcript
	log.WithField("transcript_len", len(transcript)).Info("transcription complete")

	// A database failure here is recorded, not fatal: the transcript is
	// still in memory for the summarization stage.
	if err := o.meetings.SaveTranscript(ctx, up.MeetingID, transcript); err != nil {
		log.WithField("error", err.Error()).Warn("transcript persistence failed")
		res.Errs = append(res.Errs, fmt.Errorf("transcript %w", ErrPersistence))
	} else {
		res.State = StateTranscriptPersisted
	}

	o.summarizeAndPersist(ctx, up.MeetingID, transcript, res, log)

	res.State = StateDone
	return res, nil
}

// Resummarize re-runs the summarization stages over an already stored
// transcript (the transcript-only path). Outcome semantics mirror the
// tail of Process.
func (o *Orchestrator) Resummarize(ctx context.Context, meetingID int64, transcript string) (*Result, error) {
	log := o.log.WithMeeting(meetingID).WithField("component", "pipeline")
	res := &Result{State: StateTranscribed, Transcript: transcript}
	o.summarizeAndPersist(ctx, meetingID, transcript, res, log)
	res.State = StateDone
	return res, nil
}

type generation struct {
	kind summarize.Kind
	text string
	err  error
}

// summarizeAndPersist fires the two generation calls concurrently, waits
// for both to settle independently, and persists only the halves that
// produced a new value.
func (o *Orchestrator) summarizeAndPersist(ctx context.Context, meetingID int64, transcript string, res *Result, log *logrus.Entry) {
	ch := make(chan generation, 2)
	for _, kind := range []summarize.Kind{summarize.KindSummary, summarize.KindTasks} {
		go func(k summarize.Kind) {
			text, err := o.summarizer.Generate(ctx, k, transcript)
			ch <- generation{kind: k, text: text, err: err}
		}(kind)
	}

	for i := 0; i < 2; i++ {
		g := <-ch
		if g.err != nil {
			res.Errs = append(res.Errs, g.err)
			continue
		}
		switch g.kind {
		case summarize.KindSummary:
			res.Summary = g.text
			res.SummaryGenerated = true
		case summarize.KindTasks:
			res.Tasks = g.text
			res.TasksGenerated = true
		}
	}
	res.State = StateSummarized

	if !res.SummaryGenerated && !res.TasksGenerated {
		return
	}

	var summaryVal, tasksVal *string
	if res.SummaryGenerated {
		summaryVal = &res.Summary
	}
	if res.TasksGenerated {
		tasksVal = &res.Tasks
	}
	if err := o.meetings.SaveArtifacts(ctx, meetingID, summaryVal, tasksVal); err != nil {
		log.WithField("error", err.Error()).Warn("artifact persistence failed")
		res.Errs = append(res.Errs, fmt.Errorf("artifact %w", ErrPersistence))
		return
	}
	res.State = StateArtifactsPersisted
	log.Info("summary artifacts persisted")
}
