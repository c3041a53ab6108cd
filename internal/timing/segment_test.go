package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitKeepsPunctuation(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split("First sentence. Second one! Third one?", "en-US-GuyNeural")

	require.Len(t, segments, 3)
	assert.Equal(t, "First sentence.", segments[0].Text)
	assert.Equal(t, "Second one!", segments[1].Text)
	assert.Equal(t, "Third one?", segments[2].Text)
}

func TestSplitExtractsTags(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split(
		"[voice=en-US-AriaNeural] [rate=-10%] [pitch=+2st] Welcome everyone.",
		"en-US-GuyNeural")

	require.Len(t, segments, 1)
	s := segments[0]
	assert.Equal(t, "Welcome everyone.", s.Text)
	assert.Equal(t, "en-US-AriaNeural", s.Voice)
	assert.Equal(t, "-10%", s.Rate)
	assert.Equal(t, "+2st", s.Pitch)
}

func TestSplitPauseAtSentenceEnd(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split("Hold on a moment [pause=300ms]", "en-US-GuyNeural")

	require.Len(t, segments, 1)
	assert.Equal(t, "Hold on a moment", segments[0].Text)
	assert.Equal(t, 300, segments[0].PauseAfter)
}

func TestSplitDefaultVoice(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split("Plain sentence here.", "hi-IN-SwaraNeural")

	require.Len(t, segments, 1)
	assert.Equal(t, "hi-IN-SwaraNeural", segments[0].Voice)
}

func TestSplitStripsUnknownTags(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split("[emphasis]Key idea[/emphasis] stated [style=cheerful] plainly.", "en-US-GuyNeural")

	require.Len(t, segments, 1)
	assert.Equal(t, "Key idea stated plainly.", segments[0].Text)
}

func TestSplitDevanagariBoundaries(t *testing.T) {
	seg := NewPunctSegmenter()

	segments := seg.Split("पहला वाक्य। दूसरा वाक्य॥ तीसरा वाक्य।", "hi-IN-SwaraNeural")

	require.Len(t, segments, 3)
	assert.Equal(t, "पहला वाक्य।", segments[0].Text)
	assert.Equal(t, "दूसरा वाक्य॥", segments[1].Text)
}

func TestSplitEmptyAndWhitespace(t *testing.T) {
	seg := NewPunctSegmenter()

	assert.Empty(t, seg.Split("", "en-US-GuyNeural"))
	assert.Empty(t, seg.Split("   \n\t  ", "en-US-GuyNeural"))
}

func TestCountTerminals(t *testing.T) {
	seg := NewPunctSegmenter()

	assert.Equal(t, 0, seg.CountTerminals("no terminals, just commas"))
	assert.Equal(t, 3, seg.CountTerminals("One. Two? Three!"))
	assert.Equal(t, 2, seg.CountTerminals("एक। दो॥"))
}

func TestStripTags(t *testing.T) {
	got := StripTags("[voice=en-US-GuyNeural] Hello [emphasis]big[/emphasis] world [pause=100ms]")
	assert.Equal(t, "Hello big world", got)
}

func TestParseRatePct(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"+10%", 10},
		{"-20%", -20},
		{"0%", 0},
		{"", 0},
		{"fast", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseRatePct(tt.in), "input %q", tt.in)
	}
}
