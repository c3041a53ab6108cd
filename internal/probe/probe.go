package probe

import (
	"context"
	"fmt"
	"os"

	"slidecast/internal/metrics"
)

// strategy is one way to measure a media duration. Strategies report
// unavailability separately from failure so the chain can log why a step
// was skipped versus why it broke.
type strategy interface {
	name() string
	available(path string) error
	duration(ctx context.Context, path string) (float64, error)
}

// Duration walks the strategy chain in order until one succeeds. Each
// attempt's failure reason is kept; chain exhaustion yields a
// MeasurementError carrying all of them.
func (p *implProber) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("media file not found: %w", err)
	}

	var attempts []Attempt

	for _, s := range p.strategies {
		if err := s.available(path); err != nil {
			p.logger.Debug(ctx, "Probe strategy %s unavailable for %s: %v", s.name(), path, err)
			metrics.ProbeAttempts.WithLabelValues(s.name(), "unavailable").Inc()
			attempts = append(attempts, Attempt{Strategy: s.name(), Err: err})
			continue
		}

		dur, err := s.duration(ctx, path)
		if err != nil {
			p.logger.Warn(ctx, "Probe strategy %s failed for %s: %v", s.name(), path, err)
			metrics.ProbeAttempts.WithLabelValues(s.name(), "failed").Inc()
			attempts = append(attempts, Attempt{Strategy: s.name(), Err: err})
			continue
		}

		p.logger.Info(ctx, "Probed duration: %.3fs for %s (via %s)", dur, path, s.name())
		metrics.ProbeAttempts.WithLabelValues(s.name(), "success").Inc()
		return dur, nil
	}

	return 0, &MeasurementError{Path: path, Attempts: attempts}
}
