package slides

import (
	"strings"

	"slidecast/internal/reconcile"
	"slidecast/internal/timing"
)

// BuildMapping links slides to sentence indices by counting sentence
// terminals in the accumulated speaker notes. Title slides never receive
// sentences; they get a fixed window instead, as do content slides with
// no narration. The heuristic over-counts on abbreviations and decimal
// numbers, which is why terminal counting is delegated to the same
// Segmenter the estimator splits with.
func BuildMapping(
	deck []Slide,
	sentenceCount int,
	seg timing.Segmenter,
	titleSec, silentSec float64,
) []reconcile.SlideMapping {
	mapping := make([]reconcile.SlideMapping, 0, len(deck))

	var accumulated strings.Builder
	sentenceIdx := 0

	for i, slide := range deck {
		slideNum := i + 1

		if slide.Type == TypeTitle {
			title := titleSec
			mapping = append(mapping, reconcile.SlideMapping{
				SlideNumber:     slideNum,
				SentenceIndices: []int{},
				IsTitle:         true,
				FixedDuration:   &title,
			})
			continue
		}

		accumulated.WriteString(" ")
		accumulated.WriteString(slide.SpeakerNotes)

		target := seg.CountTerminals(accumulated.String()) - sentenceIdx

		var indices []int
		for range target {
			if sentenceIdx >= sentenceCount {
				break
			}
			indices = append(indices, sentenceIdx)
			sentenceIdx++
		}

		if len(indices) > 0 {
			mapping = append(mapping, reconcile.SlideMapping{
				SlideNumber:     slideNum,
				SentenceIndices: indices,
			})
			continue
		}

		silent := silentSec
		mapping = append(mapping, reconcile.SlideMapping{
			SlideNumber:     slideNum,
			SentenceIndices: []int{},
			FixedDuration:   &silent,
		})
	}

	return mapping
}
