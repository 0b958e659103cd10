package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"meetscribe-go/internal/logger"
)

var (
	// ErrUnavailable is a configuration-level failure (missing credential,
	// empty audio buffer) detected before any network call.
	ErrUnavailable = errors.New("transcription unavailable")
	// ErrFailed covers upstream service errors and malformed responses.
	ErrFailed = errors.New("transcription failed")
)

// WhisperClient uploads an audio buffer to an OpenAI-compatible
// speech-to-text endpoint and returns plain transcript text.
type WhisperClient struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
	log        *logger.Logger
}

func NewWhisperClient(apiKey, endpoint, model string, log *logger.Logger) *WhisperClient {
	return &WhisperClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		// large audio payloads; the generous timeout stands in for the
		// transport defaults the rest of the pipeline relies on
		httpClient: &http.Client{Timeout: 30 * time.Minute},
		log:        log,
	}
}

type whisperResponse struct {
	Text *string `json:"text"`
}

// Transcribe sends one multipart request with the audio payload and the
// fixed model identifier. No chunking, no streaming, no retries.
func (w *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if w.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY not configured", ErrUnavailable)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio buffer", ErrUnavailable)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		w.log.WithField("component", "transcribe").
			WithField("http_status", resp.StatusCode).
			Warn("speech-to-text request rejected")
		return "", fmt.Errorf("%w: http %d: %s", ErrFailed, resp.StatusCode, trimBody(raw))
	}

	// The service contract is a JSON body with a string "text" field.
	// Anything else is an invalid response, not a partial result.
	var parsed whisperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Text == nil {
		return "", fmt.Errorf("%w: invalid response format", ErrFailed)
	}
	return *parsed.Text, nil
}

func trimBody(b []byte) string {
	const max = 512
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
