package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"slidecast/pkg/executor"
)

// ffprobeStrategy asks ffprobe for the container's duration field only.
// This is the cheapest and most precise path when the tool is installed.
type ffprobeStrategy struct {
	binary   string
	executor executor.Executor
	timeout  time.Duration
}

func (s *ffprobeStrategy) name() string { return "ffprobe" }

func (s *ffprobeStrategy) available(string) error {
	if _, err := s.executor.LookPath(s.binary); err != nil {
		return fmt.Errorf("%s not found: %w", s.binary, err)
	}
	return nil
}

func (s *ffprobeStrategy) duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := s.executor.Execute(ctx, s.binary, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(out), err)
	}

	return dur, nil
}
