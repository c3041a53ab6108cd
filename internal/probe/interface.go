package probe

import (
	"context"
	"fmt"
	"strings"
)

// Prober measures the real duration of an audio or video asset in seconds.
// This measurement is the source of truth for timeline reconciliation.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Attempt records the outcome of one probing strategy.
type Attempt struct {
	Strategy string
	Err      error
}

// MeasurementError means every probing strategy was exhausted. Callers
// must abort the run that requested the measurement; guessing a duration
// would silently desynchronize the timeline.
type MeasurementError struct {
	Path     string
	Attempts []Attempt
}

func (e *MeasurementError) Error() string {
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return fmt.Sprintf("measure duration of %s: all strategies failed (%s)",
		e.Path, strings.Join(reasons, "; "))
}
