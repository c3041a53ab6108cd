package images

import (
	"net/http"
	"time"

	"slidecast/internal/config"
	"slidecast/internal/logger"
)

type implFetcher struct {
	searchURL   string
	apiKey      string
	maxPerSlide int
	client      *http.Client
	logger      logger.Logger
}

// New creates a Fetcher against the image search API at
// cfg.Images.SearchURL.
func New(cfg *config.Config, log logger.Logger) Fetcher {
	timeout := time.Duration(cfg.Images.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	maxPerSlide := cfg.Images.MaxPerSlide
	if maxPerSlide <= 0 {
		maxPerSlide = 2
	}

	return &implFetcher{
		searchURL:   cfg.Images.SearchURL,
		apiKey:      cfg.Images.APIKey,
		maxPerSlide: maxPerSlide,
		client:      &http.Client{Timeout: timeout},
		logger:      log,
	}
}
