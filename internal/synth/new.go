package synth

import (
	"net/http"
	"time"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/internal/timing"
)

type implSynth struct {
	baseURL   string
	client    *http.Client
	segmenter timing.Segmenter
	logger    logger.Logger
}

// New creates a Synthesizer backed by the HTTP speech service at
// cfg.TTS.BaseURL.
func New(cfg *config.Config, log logger.Logger) Synthesizer {
	timeout := time.Duration(cfg.TTS.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &implSynth{
		baseURL:   cfg.TTS.BaseURL,
		client:    &http.Client{Timeout: timeout},
		segmenter: timing.NewPunctSegmenter(),
		logger:    log,
	}
}
