package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/internal/reconcile"
)

func sampleSentences() []reconcile.ScaledSentence {
	return []reconcile.ScaledSentence{
		{Index: 0, Text: "Welcome to the session.", Start: 0, End: 2.5, Duration: 2.5},
		{Index: 1, Text: "Let us begin.", Start: 2.5, End: 4.125, Duration: 1.625},
		{Index: 2, Text: "सत्र में आपका स्वागत है।", Start: 4.125, End: 3665.75, Duration: 3661.625},
	}
}

func TestWriteVTT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.vtt")
	require.NoError(t, WriteVTT(path, sampleSentences()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "WEBVTT\n\n" +
		"1\n00:00:00.000 --> 00:00:02.500\nWelcome to the session.\n\n" +
		"2\n00:00:02.500 --> 00:00:04.125\nLet us begin.\n\n" +
		"3\n00:00:04.125 --> 01:01:05.750\nसत्र में आपका स्वागत है।\n\n"
	assert.Equal(t, want, string(data))
}

func TestWriteSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.srt")
	require.NoError(t, WriteSRT(path, sampleSentences()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "1\n00:00:00,000 --> 00:00:02,500\nWelcome to the session.\n\n" +
		"2\n00:00:02,500 --> 00:00:04,125\nLet us begin.\n\n" +
		"3\n00:00:04,125 --> 01:01:05,750\nसत्र में आपका स्वागत है।\n\n"
	assert.Equal(t, want, string(data))
}

func TestWriteVTTEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.vtt")
	require.NoError(t, WriteVTT(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n\n", string(data))
}

func TestSplitClockRounding(t *testing.T) {
	h, m, s, ms := splitClock(0.9999)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)
	assert.Equal(t, 1, s)
	assert.Equal(t, 0, ms)

	h, m, s, ms = splitClock(-0.25)
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{h, m, s, ms})
}
