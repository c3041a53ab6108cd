package reconcile

import (
	"context"
	"fmt"
	"math"

	"slidecast/internal/logger"
	"slidecast/internal/timing"
)

const (
	// DefaultTitleDuration backstops title entries that arrive without an
	// explicit fixed duration. Titles never carry narration.
	DefaultTitleDuration = 4.0

	largeCorrection = 0.15
	coverageLow     = 95.0
	coverageHigh    = 105.0
)

// Reconciler scales estimated sentence timings to the measured audio
// duration and folds them into a contiguous, monotonic per-slide timeline.
type Reconciler struct {
	logger logger.Logger
}

func New(log logger.Logger) *Reconciler {
	return &Reconciler{logger: log}
}

// Reconcile combines the estimated timeline, the measured duration, and
// the slide/sentence structure into the authoritative timing document.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	sentences []timing.Sentence,
	actualDuration float64,
	mapping []SlideMapping,
) (*Timings, error) {
	estimated := 0.0
	if len(sentences) > 0 {
		estimated = sentences[len(sentences)-1].End
	}

	scale := 1.0
	if estimated > 0 {
		scale = actualDuration / estimated
	}

	if math.Abs(1-scale) > largeCorrection {
		r.logger.Warn(ctx, "Large timing correction needed: %.1f%% (estimated %.3fs, actual %.3fs)",
			math.Abs(1-scale)*100, estimated, actualDuration)
	}

	scaled := scaleSentences(sentences, scale)

	slides, consumed, err := r.foldMapping(ctx, mapping, scaled)
	if err != nil {
		return nil, err
	}

	r.redistributeLeftovers(ctx, slides, consumed, scaled)

	r.checkCoverage(ctx, slides, actualDuration)

	return &Timings{
		ActualDuration:    round3(actualDuration),
		EstimatedDuration: round3(estimated),
		ScaleFactor:       round4(scale),
		SlideCount:        len(slides.timings),
		SentenceCount:     len(scaled),
		Slides:            slides.timings,
		Sentences:         scaled,
	}, nil
}

func scaleSentences(sentences []timing.Sentence, scale float64) []ScaledSentence {
	scaled := make([]ScaledSentence, 0, len(sentences))
	for _, s := range sentences {
		scaled = append(scaled, ScaledSentence{
			Index:         s.Index,
			Text:          s.Text,
			Start:         round3(s.Start * scale),
			End:           round3(s.End * scale),
			Duration:      round3(s.Duration * scale),
			OriginalStart: s.Start,
			OriginalEnd:   s.End,
		})
	}
	return scaled
}

// slideFold accumulates output timings along with the offset each
// narrated slide was emitted under, so leftover redistribution can extend
// the right window consistently.
type slideFold struct {
	timings []SlideTiming
	offsets []float64
}

// foldMapping walks mapping entries in slide order carrying a running
// clock and the accumulated fixed-duration offset, instead of mutating
// counters shared across contexts. Returns the fold result plus the set
// of consumed sentence indices.
func (r *Reconciler) foldMapping(
	ctx context.Context,
	mapping []SlideMapping,
	scaled []ScaledSentence,
) (*slideFold, map[int]bool, error) {
	fold := &slideFold{}
	consumed := make(map[int]bool)

	currentTime := 0.0
	offset := 0.0

	for _, m := range mapping {
		if m.SlideNumber < 1 {
			return nil, nil, &MappingError{SlideNumber: m.SlideNumber, Reason: "slide number must be 1-based"}
		}

		// Titles never borrow narration, whatever the upstream sentence
		// counting produced. Their declared indices stay unconsumed and are
		// redistributed to a content slide later.
		if m.IsTitle {
			fixed := DefaultTitleDuration
			if m.FixedDuration != nil {
				fixed = *m.FixedDuration
			}
			currentTime, offset = fold.appendFixed(m, fixed, currentTime, offset)
			r.logger.Debug(ctx, "Slide %d (title): fixed %.3fs window", m.SlideNumber, fixed)
			continue
		}

		if m.FixedDuration != nil {
			currentTime, offset = fold.appendFixed(m, *m.FixedDuration, currentTime, offset)
			r.logger.Debug(ctx, "Slide %d: fixed %.3fs window (no narration)", m.SlideNumber, *m.FixedDuration)
			continue
		}

		if len(m.SentenceIndices) == 0 {
			r.logger.Warn(ctx, "Slide %d has no sentences and no fixed duration - skipping", m.SlideNumber)
			continue
		}

		first := m.SentenceIndices[0]
		last := m.SentenceIndices[len(m.SentenceIndices)-1]
		if first < 0 || last >= len(scaled) {
			return nil, nil, &MappingError{
				SlideNumber: m.SlideNumber,
				Reason:      fmt.Sprintf("sentence indices [%d, %d] out of range (have %d sentences)", first, last, len(scaled)),
			}
		}

		for _, idx := range m.SentenceIndices {
			consumed[idx] = true
		}

		start := scaled[first].Start + offset
		end := scaled[last].End + offset

		fold.timings = append(fold.timings, SlideTiming{
			SlideNumber:     m.SlideNumber,
			Start:           round3(start),
			End:             round3(end),
			Duration:        round3(end - start),
			SentenceCount:   len(m.SentenceIndices),
			SentenceIndices: append([]int(nil), m.SentenceIndices...),
			IsTitle:         false,
		})
		fold.offsets = append(fold.offsets, offset)

		currentTime = end
	}

	return fold, consumed, nil
}

func (f *slideFold) appendFixed(m SlideMapping, fixed, currentTime, offset float64) (float64, float64) {
	start := currentTime
	end := start + fixed

	f.timings = append(f.timings, SlideTiming{
		SlideNumber:     m.SlideNumber,
		Start:           round3(start),
		End:             round3(end),
		Duration:        round3(fixed),
		SentenceCount:   0,
		SentenceIndices: []int{},
		IsTitle:         m.IsTitle,
	})
	f.offsets = append(f.offsets, offset)

	return end, offset + fixed
}

// redistributeLeftovers appends sentences no mapping entry consumed to the
// last non-title slide and extends its window. Dropping narration silently
// would desynchronize every later consumer.
func (r *Reconciler) redistributeLeftovers(
	ctx context.Context,
	fold *slideFold,
	consumed map[int]bool,
	scaled []ScaledSentence,
) {
	var leftovers []int
	for i := range scaled {
		if !consumed[i] {
			leftovers = append(leftovers, i)
		}
	}
	if len(leftovers) == 0 {
		return
	}

	for i := len(fold.timings) - 1; i >= 0; i-- {
		st := &fold.timings[i]
		if st.IsTitle {
			continue
		}

		st.SentenceIndices = append(st.SentenceIndices, leftovers...)
		st.SentenceCount = len(st.SentenceIndices)

		lastIdx := leftovers[len(leftovers)-1]
		newEnd := scaled[lastIdx].End + fold.offsets[i]
		if newEnd > st.End {
			st.End = round3(newEnd)
			st.Duration = round3(st.End - st.Start)
		}

		r.logger.Warn(ctx, "Added %d remaining sentences to slide %d", len(leftovers), st.SlideNumber)
		return
	}

	r.logger.Warn(ctx, "No content slide available for %d remaining sentences", len(leftovers))
}

func (r *Reconciler) checkCoverage(ctx context.Context, fold *slideFold, actualDuration float64) {
	if len(fold.timings) == 0 || actualDuration <= 0 {
		return
	}

	lastEnd := fold.timings[len(fold.timings)-1].End
	coverage := lastEnd / actualDuration * 100

	switch {
	case coverage < coverageLow:
		r.logger.Warn(ctx, "Low timeline coverage: %.1f%% - audio may be truncated", coverage)
	case coverage > coverageHigh:
		r.logger.Warn(ctx, "Over coverage: %.1f%% - slides may run too long", coverage)
	default:
		r.logger.Debug(ctx, "Timeline coverage: %.1f%%", coverage)
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
