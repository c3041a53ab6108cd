package probe

import (
	"time"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/pkg/executor"
)

type implProber struct {
	strategies []strategy
	logger     logger.Logger
}

// New creates a Prober with the standard strategy chain: ffprobe on the
// container duration field, ffmpeg decode-and-parse, then an in-process
// WAV decode that needs no external tooling at all.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Prober {
	timeout := time.Duration(cfg.Timing.ProbeTimeoutSec) * time.Second

	return &implProber{
		strategies: []strategy{
			&ffprobeStrategy{binary: cfg.FFmpeg.ProbePath, executor: exec, timeout: timeout},
			&ffmpegStrategy{binary: cfg.FFmpeg.BinaryPath, executor: exec, timeout: timeout},
			&wavStrategy{},
		},
		logger: log,
	}
}
