package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetscribe-go/internal/logger"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestTranscribeSuccess(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model field = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file field: %v", err)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{"text": "hello from the meeting"}`))
	})

	c := NewWhisperClient("k", srv.URL, "whisper-1", logger.New())
	text, err := c.Transcribe(context.Background(), []byte("mp3"), "rec.mp3")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello from the meeting" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscribeEmptyText(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	})

	c := NewWhisperClient("k", srv.URL, "whisper-1", logger.New())
	text, err := c.Transcribe(context.Background(), []byte("mp3"), "rec.mp3")
	if err != nil {
		t.Fatalf("empty transcript must not be an error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestTranscribeInvalidResponseFormat(t *testing.T) {
	for name, body := range map[string]string{
		"missing field": `{"status": "ok"}`,
		"wrong type":    `{"text": 5}`,
		"not json":      `<html>gateway error</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			})
			c := NewWhisperClient("k", srv.URL, "whisper-1", logger.New())
			_, err := c.Transcribe(context.Background(), []byte("mp3"), "rec.mp3")
			if !errors.Is(err, ErrFailed) {
				t.Fatalf("err = %v, want ErrFailed", err)
			}
			if !strings.Contains(err.Error(), "invalid response format") {
				t.Errorf("err = %v, want invalid response format", err)
			}
		})
	}
}

func TestTranscribeUpstreamError(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	})

	c := NewWhisperClient("k", srv.URL, "whisper-1", logger.New())
	_, err := c.Transcribe(context.Background(), []byte("mp3"), "rec.mp3")
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("err = %v, want ErrFailed", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("err %v does not carry upstream status", err)
	}
}

func TestTranscribeUnavailableBeforeNetworkIO(t *testing.T) {
	srv, hits := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"text": "x"}`))
	})

	// missing credential
	c := NewWhisperClient("", srv.URL, "whisper-1", logger.New())
	if _, err := c.Transcribe(context.Background(), []byte("mp3"), "rec.mp3"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	// empty buffer
	c = NewWhisperClient("k", srv.URL, "whisper-1", logger.New())
	if _, err := c.Transcribe(context.Background(), nil, "rec.mp3"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	if *hits != 0 {
		t.Errorf("network calls made for unavailable configurations: %d", *hits)
	}
}
