package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTwoSentences(t *testing.T) {
	est := NewEstimator(nil)

	// 165 WPM language default (voice has no override entry)
	result := est.Estimate("Hello world. This is a test.", "en", "en-US-JennyNeural", "")

	require.Len(t, result.Sentences, 2)
	assert.Equal(t, 165, result.BaseWPM)

	s0 := result.Sentences[0]
	assert.Equal(t, 2, s0.Words)
	assert.InDelta(t, 165.0, s0.EffWPM, 0.01)
	// 2/165*60 + 450ms for the period
	assert.InDelta(t, 1.177, s0.Duration, 0.001)
	assert.Equal(t, 0.0, s0.Start)

	s1 := result.Sentences[1]
	assert.Equal(t, 4, s1.Words)
	// 4/165*60 + 450ms
	assert.InDelta(t, 1.905, s1.Duration, 0.001)

	assert.InDelta(t, 3.082, result.TotalDuration, 0.002)
}

func TestEstimateDeterministic(t *testing.T) {
	est := NewEstimator(nil)
	text := "First point, with a comma. Second point! Third point?"

	a := est.Estimate(text, "en", "en-US-GuyNeural", "+10%")
	b := est.Estimate(text, "en", "en-US-GuyNeural", "+10%")

	assert.Equal(t, a, b)
}

func TestEstimateMonotonicTimeline(t *testing.T) {
	est := NewEstimator(nil)
	result := est.Estimate(
		"One sentence here. Another one follows. A third wraps up, finally. Done!",
		"en", "en-US-GuyNeural", "")

	require.NotEmpty(t, result.Sentences)
	for i, s := range result.Sentences {
		assert.InDelta(t, s.Start+s.Duration, s.End, 0.0015, "sentence %d end", i)
		if i > 0 {
			assert.InDelta(t, result.Sentences[i-1].End, s.Start, 0.0015, "sentence %d start", i)
		}
	}
	assert.InDelta(t, result.Sentences[len(result.Sentences)-1].End, result.TotalDuration, 0.0015)
}

func TestEstimateEmptyInput(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate("", "en", "en-US-GuyNeural", "")

	assert.Empty(t, result.Sentences)
	assert.Equal(t, 0.0, result.TotalDuration)
	assert.Equal(t, 0, result.SentenceCount)
}

func TestEstimateVoiceOverride(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate("Hello there today.", "en", "en-US-GuyNeural", "")
	assert.Equal(t, 160, result.BaseWPM)

	result = est.Estimate("नमस्ते दुनिया।", "hi", "hi-IN-SwaraNeural", "")
	assert.Equal(t, 150, result.BaseWPM)
}

func TestEstimateRateTag(t *testing.T) {
	est := NewEstimator(nil)

	// +50% on 160 WPM = 240, exactly at the clamp ceiling
	result := est.Estimate("[rate=+50%] Fast sentence spoken quickly now.", "en", "en-US-GuyNeural", "")
	require.Len(t, result.Sentences, 1)
	assert.InDelta(t, 240.0, result.Sentences[0].EffWPM, 0.01)
	assert.Equal(t, 50.0, result.Sentences[0].RatePct)

	// -90% would drop below the floor; clamp to 80
	result = est.Estimate("[rate=-90%] Slow sentence spoken very slowly.", "en", "en-US-GuyNeural", "")
	require.Len(t, result.Sentences, 1)
	assert.InDelta(t, 80.0, result.Sentences[0].EffWPM, 0.01)
}

func TestEstimateFallbackRate(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate("No tag on this sentence.", "en", "en-US-GuyNeural", "+25%")
	require.Len(t, result.Sentences, 1)
	// 160 * 1.25 = 200
	assert.InDelta(t, 200.0, result.Sentences[0].EffWPM, 0.01)
	assert.Equal(t, 25.0, result.Sentences[0].RatePct)
}

func TestEstimateExplicitPause(t *testing.T) {
	est := NewEstimator(nil)

	withPause := est.Estimate("An intro. And a closing thought [pause=700ms]", "en", "en-US-GuyNeural", "")
	without := est.Estimate("An intro. And a closing thought", "en", "en-US-GuyNeural", "")

	require.Len(t, withPause.Sentences, 2)
	require.Len(t, without.Sentences, 2)
	assert.InDelta(t, 0.7, withPause.Sentences[1].Duration-without.Sentences[1].Duration, 0.002)
}

func TestEstimateDevanagariTerminals(t *testing.T) {
	est := NewEstimator(nil)

	result := est.Estimate("पहला वाक्य यहाँ है। दूसरा वाक्य भी है।", "hi", "hi-IN-MadhurNeural", "")
	assert.Len(t, result.Sentences, 2)
}

func TestCountPauseMs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"single period", "Hello world.", 450},
		{"comma and period", "Hello, world.", 650},
		{"question", "Really?", 450},
		{"devanagari purna viram", "नमस्ते।", 450},
		{"unicode ellipsis", "Well…", 700},
		{"no punctuation", "plain text", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countPauseMs(tt.text))
		})
	}
}
