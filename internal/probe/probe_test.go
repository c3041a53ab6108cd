package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/internal/config"
	"slidecast/internal/logger"
)

// fakeExecutor scripts per-binary behavior for strategy chain tests.
type fakeExecutor struct {
	missing map[string]bool
	stdout  map[string]string
	stderr  map[string]string
	fail    map[string]error
}

func (f *fakeExecutor) Execute(_ context.Context, name string, _ ...string) (string, error) {
	if err := f.fail[name]; err != nil {
		return "", err
	}
	return f.stdout[name], nil
}

func (f *fakeExecutor) ExecuteCapture(_ context.Context, name string, _ ...string) (string, string, error) {
	return f.stdout[name], f.stderr[name], f.fail[name]
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

func testConfig() *config.Config {
	return &config.Config{
		FFmpeg: config.FFmpegConfig{BinaryPath: "ffmpeg", ProbePath: "ffprobe"},
		Timing: config.TimingConfig{ProbeTimeoutSec: 10},
	}
}

func touchFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("not real media"), 0644))
	return path
}

// writeTestWAV produces one second of silence at 8kHz mono.
func writeTestWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, 8000),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

func TestDurationViaFFprobe(t *testing.T) {
	exec := &fakeExecutor{
		missing: map[string]bool{},
		stdout:  map[string]string{"ffprobe": "58.123456\n"},
		fail:    map[string]error{},
	}
	p := New(testConfig(), exec, logger.New("error"))

	dur, err := p.Duration(context.Background(), touchFile(t, "audio.mp3"))

	require.NoError(t, err)
	assert.InDelta(t, 58.123456, dur, 1e-9)
}

func TestDurationFallsBackToFFmpeg(t *testing.T) {
	exec := &fakeExecutor{
		missing: map[string]bool{},
		stdout:  map[string]string{},
		stderr: map[string]string{
			"ffmpeg": "Input #0, mp3, from 'audio.mp3':\n  Duration: 00:01:02.50, start: 0.0\n",
		},
		fail: map[string]error{"ffprobe": errors.New("exit status 1")},
	}
	p := New(testConfig(), exec, logger.New("error"))

	dur, err := p.Duration(context.Background(), touchFile(t, "audio.mp3"))

	require.NoError(t, err)
	assert.InDelta(t, 62.5, dur, 1e-9)
}

func TestDurationFallsBackToWAVDecode(t *testing.T) {
	exec := &fakeExecutor{
		missing: map[string]bool{"ffprobe": true, "ffmpeg": true},
	}
	p := New(testConfig(), exec, logger.New("error"))

	dur, err := p.Duration(context.Background(), writeTestWAV(t))

	require.NoError(t, err)
	assert.InDelta(t, 1.0, dur, 0.01)
}

func TestDurationAllStrategiesExhausted(t *testing.T) {
	exec := &fakeExecutor{
		missing: map[string]bool{"ffprobe": true, "ffmpeg": true},
	}
	p := New(testConfig(), exec, logger.New("error"))

	// .mp3 extension disqualifies the wav-decode strategy too
	_, err := p.Duration(context.Background(), touchFile(t, "audio.mp3"))

	var mErr *MeasurementError
	require.ErrorAs(t, err, &mErr)
	assert.Len(t, mErr.Attempts, 3)
}

func TestDurationMissingFile(t *testing.T) {
	p := New(testConfig(), &fakeExecutor{}, logger.New("error"))

	_, err := p.Duration(context.Background(), "/nonexistent/audio.mp3")

	require.Error(t, err)
	var mErr *MeasurementError
	assert.False(t, errors.As(err, &mErr), "missing file is not a measurement exhaustion")
}

func TestParseDurationLine(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{"standard line", "  Duration: 00:00:58.00, start: 0.000000", 58.0, false},
		{"with hours", "Duration: 01:02:03.45", 3723.45, false},
		{"no duration", "some unrelated output", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationLine(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
