package probe

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"slidecast/pkg/executor"
)

var reDuration = regexp.MustCompile(`Duration: (\d{2}):(\d{2}):(\d{2})\.(\d{2})`)

// ffmpegStrategy runs ffmpeg in a null-output decode and parses the
// Duration line from its diagnostics. Works where ffprobe is missing or
// the container's duration field is unreadable.
type ffmpegStrategy struct {
	binary   string
	executor executor.Executor
	timeout  time.Duration
}

func (s *ffmpegStrategy) name() string { return "ffmpeg" }

func (s *ffmpegStrategy) available(string) error {
	if _, err := s.executor.LookPath(s.binary); err != nil {
		return fmt.Errorf("%s not found: %w", s.binary, err)
	}
	return nil
}

func (s *ffmpegStrategy) duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// ffmpeg prints the Duration line to stderr whether or not the null
	// mux succeeds, so the exit status is checked only if parsing fails.
	_, stderr, runErr := s.executor.ExecuteCapture(ctx, s.binary, "-i", path, "-f", "null", "-")

	dur, parseErr := parseDurationLine(stderr)
	if parseErr != nil {
		if runErr != nil {
			return 0, fmt.Errorf("ffmpeg decode: %w", runErr)
		}
		return 0, parseErr
	}

	return dur, nil
}

func parseDurationLine(output string) (float64, error) {
	m := reDuration.FindStringSubmatch(output)
	if m == nil {
		return 0, fmt.Errorf("no duration line in ffmpeg output")
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	centis, _ := strconv.Atoi(m[4])

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(centis)/100, nil
}
