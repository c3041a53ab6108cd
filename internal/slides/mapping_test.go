package slides

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/internal/timing"
)

func TestBuildMappingTitleGetsFixedDuration(t *testing.T) {
	deck := []Slide{
		{SlideIndex: 0, Type: TypeTitle, Title: "Intro"},
		{SlideIndex: 1, Type: TypeContent, Title: "Body", SpeakerNotes: "One sentence. Two sentences."},
	}

	mapping := BuildMapping(deck, 2, timing.NewPunctSegmenter(), 4.0, 2.0)

	require.Len(t, mapping, 2)

	title := mapping[0]
	assert.True(t, title.IsTitle)
	assert.Empty(t, title.SentenceIndices)
	require.NotNil(t, title.FixedDuration)
	assert.Equal(t, 4.0, *title.FixedDuration)

	content := mapping[1]
	assert.False(t, content.IsTitle)
	assert.Equal(t, []int{0, 1}, content.SentenceIndices)
	assert.Nil(t, content.FixedDuration)
}

func TestBuildMappingDistributesByAccumulatedTerminals(t *testing.T) {
	deck := []Slide{
		{Type: TypeContent, SpeakerNotes: "First. Second."},
		{Type: TypeContent, SpeakerNotes: "Third."},
		{Type: TypeContent, SpeakerNotes: "Fourth. Fifth. Sixth."},
	}

	mapping := BuildMapping(deck, 6, timing.NewPunctSegmenter(), 4.0, 2.0)

	require.Len(t, mapping, 3)
	assert.Equal(t, []int{0, 1}, mapping[0].SentenceIndices)
	assert.Equal(t, []int{2}, mapping[1].SentenceIndices)
	assert.Equal(t, []int{3, 4, 5}, mapping[2].SentenceIndices)
}

func TestBuildMappingSilentContentSlide(t *testing.T) {
	deck := []Slide{
		{Type: TypeContent, SpeakerNotes: "Only narration here."},
		{Type: TypeContent, SpeakerNotes: ""},
	}

	mapping := BuildMapping(deck, 1, timing.NewPunctSegmenter(), 4.0, 2.0)

	require.Len(t, mapping, 2)

	silent := mapping[1]
	assert.Empty(t, silent.SentenceIndices)
	require.NotNil(t, silent.FixedDuration)
	assert.Equal(t, 2.0, *silent.FixedDuration)
}

func TestBuildMappingStopsAtSentenceCount(t *testing.T) {
	// The punctuation heuristic over-counts ("e.g." style text); slides must
	// never claim indices past the real sentence count.
	deck := []Slide{
		{Type: TypeContent, SpeakerNotes: "One. Two. Three. Four."},
	}

	mapping := BuildMapping(deck, 2, timing.NewPunctSegmenter(), 4.0, 2.0)

	require.Len(t, mapping, 1)
	assert.Equal(t, []int{0, 1}, mapping[0].SentenceIndices)
}

func TestBuildMappingDevanagariNarration(t *testing.T) {
	deck := []Slide{
		{Type: TypeTitle, Title: "शीर्षक"},
		{Type: TypeContent, SpeakerNotes: "पहला वाक्य। दूसरा वाक्य॥"},
	}

	mapping := BuildMapping(deck, 2, timing.NewPunctSegmenter(), 4.0, 2.0)

	require.Len(t, mapping, 2)
	assert.Equal(t, []int{0, 1}, mapping[1].SentenceIndices)
}

func TestFileSourceStreamsInOrder(t *testing.T) {
	script := &Script{
		Title: "Deck",
		Slides: []Slide{
			{SlideIndex: 0, Type: TypeTitle, Title: "A"},
			{SlideIndex: 1, Type: TypeContent, Title: "B"},
			{SlideIndex: 2, Type: TypeContent, Title: "C"},
		},
	}

	out, errs := NewFileSource(script).Stream(context.Background())

	var got []Slide
	for slide := range out {
		got = append(got, slide)
	}

	require.NoError(t, <-errs)
	require.Len(t, got, 3)
	for i, slide := range got {
		assert.Equal(t, i, slide.SlideIndex)
	}
}

func TestScriptNarration(t *testing.T) {
	script := &Script{
		Slides: []Slide{
			{Type: TypeTitle},
			{Type: TypeContent, SpeakerNotes: "First part."},
			{Type: TypeContent},
			{Type: TypeContent, SpeakerNotes: "Second part."},
		},
	}

	assert.Equal(t, "First part. Second part.", script.Narration())
}
