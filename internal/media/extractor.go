package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"meetscribe-go/internal/logger"
)

// ErrExtraction marks any failure of the audio extraction stage.
var ErrExtraction = errors.New("audio extraction failed")

// Extractor strips video and encodes an audio-only mp3 track from an
// uploaded recording buffer via an ffmpeg subprocess.
type Extractor struct {
	ffmpegPath string
	log        *logger.Logger
}

func NewExtractor(ffmpegPath string, log *logger.Logger) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Extractor{ffmpegPath: ffmpegPath, log: log}
}

// Extract writes input to a request-scoped scratch directory, runs
// ffmpeg -vn against it, and reads the mp3 back into memory. The scratch
// directory is removed on every exit path. Returns the audio buffer and
// the output filename. A single attempt is made; failures are terminal.
func (x *Extractor) Extract(ctx context.Context, input []byte, filename string) ([]byte, string, error) {
	scratch, cleanup, err := newScratchDir()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer cleanup()

	inPath := filepath.Join(scratch, sanitizeName(filename))
	outName := audioName(filename)
	outPath := filepath.Join(scratch, outName)

	if err := os.WriteFile(inPath, input, 0o600); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	// ffmpeg -y -i input -vn -acodec libmp3lame -b:a 128k output
	cmd := exec.CommandContext(ctx, x.ffmpegPath,
		"-y", "-i", inPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", "128k",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		x.log.WithField("component", "media").
			WithField("stderr", trimStderr(stderr.String())).
			WithField("error", err.Error()).
			Error("ffmpeg conversion failed")
		return nil, "", fmt.Errorf("%w: ffmpeg: %v", ErrExtraction, err)
	}

	audio, err := os.ReadFile(outPath)
	if err != nil {
		// ffmpeg reported success but the output is unreadable
		return nil, "", fmt.Errorf("%w: reading converted audio: %v", ErrExtraction, err)
	}
	return audio, outName, nil
}

// newScratchDir creates a uuid-keyed temp directory so concurrent uploads
// with identical filenames can never collide. The returned cleanup is
// idempotent.
func newScratchDir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "meetscribe-"+uuid.New().String())
	if err != nil {
		return "", func() {}, err
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

func sanitizeName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "recording"
	}
	return strings.ReplaceAll(base, " ", "_")
}

// audioName derives the output filename with a fixed suffix so it can
// never collide with the input path, even for uploads already named *.mp3.
func audioName(name string) string {
	base := sanitizeName(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_audio.mp3"
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 2048 {
		s = s[len(s)-2048:]
	}
	return s
}
