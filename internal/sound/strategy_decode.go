package sound

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// decodeStrategy plays the file in-process through the managed audio API:
// decode, open the speaker, stream. Richest mechanism — full control over
// playback — but requires a working audio device and a supported format.
type decodeStrategy struct{}

func (decodeStrategy) Name() string { return "decode" }

func (decodeStrategy) Attempt(ctx context.Context, path string) error {
	f, err := os.Open(path) //nolint:gosec // G304: path resolved from config/candidate list
	if err != nil {
		return fmt.Errorf("open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		return fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	bufferSize := format.SampleRate.N(time.Millisecond * 100)
	if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	defer speaker.Close()

	// Hold the process until the sound finishes; the invoking hook would
	// otherwise exit and tear down the audio handle mid-note. The context
	// deadline caps the wait — playback already started by then, so an
	// expired deadline is not a failure.
	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { close(done) })))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
	}
	return nil
}
