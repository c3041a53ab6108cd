package reconcile

import "fmt"

// SlideMapping is the structural link from a slide to its narration.
// FixedDuration is set for slides whose window is not derived from
// narration (title slides, narration-less content slides).
type SlideMapping struct {
	SlideNumber     int      `json:"slide_number"`
	SentenceIndices []int    `json:"sentence_indices"`
	IsTitle         bool     `json:"is_title"`
	FixedDuration   *float64 `json:"fixed_duration,omitempty"`
}

// SlideTiming is one authoritative output record. Seconds, rounded to
// millisecond precision.
type SlideTiming struct {
	SlideNumber     int     `json:"slide_number"`
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	Duration        float64 `json:"duration"`
	SentenceCount   int     `json:"sentence_count"`
	SentenceIndices []int   `json:"sentence_indices"`
	IsTitle         bool    `json:"is_title"`
}

// ScaledSentence carries a sentence's corrected window alongside the
// original estimate, kept for diagnostics.
type ScaledSentence struct {
	Index         int     `json:"index"`
	Text          string  `json:"text"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	Duration      float64 `json:"duration"`
	OriginalStart float64 `json:"original_start"`
	OriginalEnd   float64 `json:"original_end"`
}

// Timings is the authoritative timing document consumed by the video
// renderer and the player frontend.
type Timings struct {
	ActualDuration    float64          `json:"actual_duration"`
	EstimatedDuration float64          `json:"estimated_duration"`
	ScaleFactor       float64          `json:"scale_factor"`
	SlideCount        int              `json:"slide_count"`
	SentenceCount     int              `json:"sentence_count"`
	Slides            []SlideTiming    `json:"slides"`
	Sentences         []ScaledSentence `json:"sentences"`
}

// MappingError reports an invalid slide range or sentence index. It is
// fatal: the caller handed the reconciler inconsistent structure.
type MappingError struct {
	SlideNumber int
	Reason      string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("slide %d: %s", e.SlideNumber, e.Reason)
}
