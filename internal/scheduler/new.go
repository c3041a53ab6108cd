package scheduler

import (
	"time"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/pkg/executor"
)

type implScheduler struct {
	cfg         *config.Config
	synth       Synthesizer
	fetcher     ImageFetcher
	executor    executor.Executor
	logger      logger.Logger
	taskTimeout time.Duration
}

// New creates a Scheduler with the configured concurrency ceilings.
func New(cfg *config.Config, synth Synthesizer, fetcher ImageFetcher, exec executor.Executor, log logger.Logger) Scheduler {
	return &implScheduler{
		cfg:         cfg,
		synth:       synth,
		fetcher:     fetcher,
		executor:    exec,
		logger:      log,
		taskTimeout: time.Duration(cfg.Concurrency.TaskTimeoutSec) * time.Second,
	}
}
