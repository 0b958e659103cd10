package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meetscribe-go/internal/logger"
)

func scratchDirs(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "meetscribe-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return len(matches)
}

func TestExtractFailureCleansUp(t *testing.T) {
	before := scratchDirs(t)

	x := NewExtractor(filepath.Join(t.TempDir(), "no-such-ffmpeg"), logger.New())
	_, _, err := x.Extract(context.Background(), []byte("not a real video"), "clip.webm")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}

	if after := scratchDirs(t); after != before {
		t.Errorf("scratch directories leaked: before=%d after=%d", before, after)
	}
}

func TestScratchDirCleanupIsIdempotent(t *testing.T) {
	dir, cleanup, err := newScratchDir()
	if err != nil {
		t.Fatalf("newScratchDir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.webm"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cleanup()
	cleanup() // second call must not panic or error

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("scratch dir still present after cleanup")
	}
}

func TestAudioName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"standup.webm", "standup_audio.mp3"},
		{"weekly sync.mp4", "weekly_sync_audio.mp3"},
		{"../../etc/passwd", "passwd_audio.mp3"},
		{"", "recording_audio.mp3"},
		{"noext", "noext_audio.mp3"},
	}
	for _, tc := range cases {
		if got := audioName(tc.in); got != tc.want {
			t.Errorf("audioName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAudioNameNeverMatchesInput(t *testing.T) {
	// an upload already named *.mp3 must not map onto its own input path,
	// ffmpeg refuses identical input and output files
	for _, in := range []string{"recording.mp3", "clip_audio.mp3", "a.MP3"} {
		if got := audioName(in); got == sanitizeName(in) {
			t.Errorf("audioName(%q) = %q collides with the input filename", in, got)
		}
	}
}
