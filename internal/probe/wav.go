package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// wavStrategy decodes WAV headers in-process, computing duration from
// sample count and sample rate. It is the last resort when no external
// media tooling is installed, and only understands RIFF/WAV input.
type wavStrategy struct{}

func (s *wavStrategy) name() string { return "wav-decode" }

func (s *wavStrategy) available(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return fmt.Errorf("unsupported extension %q", ext)
	}
	return nil
}

func (s *wavStrategy) duration(_ context.Context, path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("not a valid wav file")
	}

	dur, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("wav duration: %w", err)
	}

	return dur.Seconds(), nil
}
