package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/internal/logger"
)

type stubProber struct {
	duration float64
	err      error
}

func (s *stubProber) Duration(context.Context, string) (float64, error) {
	return s.duration, s.err
}

func TestVerifySyncWithinTolerance(t *testing.T) {
	v := NewVerifier(&stubProber{duration: 58.2}, logger.New("error"))

	ok, measured, msg, err := v.VerifySync(context.Background(), "final.mp4", 58.0, 0.5)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 58.2, measured, 1e-9)
	assert.Contains(t, msg, "in sync")
}

func TestVerifySyncDriftReportedNotRaised(t *testing.T) {
	v := NewVerifier(&stubProber{duration: 61.0}, logger.New("error"))

	ok, measured, msg, err := v.VerifySync(context.Background(), "final.mp4", 58.0, 0.5)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.InDelta(t, 61.0, measured, 1e-9)
	assert.Contains(t, msg, "drift")
}

func TestVerifySyncMeasurementFailure(t *testing.T) {
	v := NewVerifier(&stubProber{err: errors.New("probe broke")}, logger.New("error"))

	_, _, _, err := v.VerifySync(context.Background(), "final.mp4", 58.0, 0.5)

	assert.Error(t, err)
}
