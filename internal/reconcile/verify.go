package reconcile

import (
	"context"
	"fmt"
	"math"

	"slidecast/internal/logger"
	"slidecast/internal/probe"
)

// Verifier is the post-hoc check that a rendered artifact's duration
// matches the reconciled timeline within tolerance.
type Verifier struct {
	prober probe.Prober
	logger logger.Logger
}

func NewVerifier(p probe.Prober, log logger.Logger) *Verifier {
	return &Verifier{prober: p, logger: log}
}

// VerifySync probes the artifact and compares against the expected
// duration. A mismatch is reported, never returned as an error; only
// measurement failure is.
func (v *Verifier) VerifySync(
	ctx context.Context,
	artifactPath string,
	expectedDuration float64,
	tolerance float64,
) (bool, float64, string, error) {
	measured, err := v.prober.Duration(ctx, artifactPath)
	if err != nil {
		return false, 0, "", fmt.Errorf("verify sync: %w", err)
	}

	diff := math.Abs(measured - expectedDuration)
	synced := diff <= tolerance

	var message string
	if synced {
		message = fmt.Sprintf("in sync: %.3fs (expected %.3fs)", measured, expectedDuration)
		v.logger.Info(ctx, "Sync verification passed for %s: %s", artifactPath, message)
	} else {
		message = fmt.Sprintf("sync drift: %.3fs vs expected %.3fs (diff %.3fs)", measured, expectedDuration, diff)
		v.logger.Warn(ctx, "Sync verification mismatch for %s: %s", artifactPath, message)
	}

	return synced, measured, message, nil
}
