package timing

import (
	"math"
	"strings"
)

// Pause weights in milliseconds per punctuation mark, matching the
// narration engine's observed pacing.
const (
	commaPauseMs    = 200
	terminalPauseMs = 450
	ellipsisPauseMs = 700

	minWPM = 80
	maxWPM = 240
)

// Per-voice speaking rates; voices not listed fall back to the language default.
var voiceWPM = map[string]int{
	"en-US-AriaNeural":  170,
	"en-US-GuyNeural":   160,
	"hi-IN-SwaraNeural": 150,
	"hi-IN-MadhurNeural": 145,
}

var langWPM = map[string]int{
	"en": 165,
	"hi": 150,
}

const defaultWPM = 165

// Sentence is a timed unit of narration.
type Sentence struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Words    int     `json:"words"`
	RatePct  float64 `json:"rate_pct"`
	EffWPM   float64 `json:"eff_wpm"`
}

// Estimate is a full per-sentence timeline derived from text alone.
type Estimate struct {
	TotalDuration float64    `json:"total_duration_sec"`
	SentenceCount int        `json:"sentence_count"`
	BaseWPM       int        `json:"base_wpm"`
	Lang          string     `json:"lang"`
	Voice         string     `json:"voice"`
	Sentences     []Sentence `json:"sentences"`
}

// Estimator converts narration text into an estimated timeline using a
// words-per-minute model. It is pure: no I/O, no clock, no randomness.
type Estimator struct {
	segmenter Segmenter
}

// NewEstimator creates an Estimator. A nil segmenter selects the
// punctuation-based default.
func NewEstimator(seg Segmenter) *Estimator {
	if seg == nil {
		seg = NewPunctSegmenter()
	}
	return &Estimator{segmenter: seg}
}

// Segmenter exposes the sentence splitter so callers sharing the mapping
// heuristic count terminals the same way the estimator splits.
func (e *Estimator) Segmenter() Segmenter {
	return e.segmenter
}

// Estimate produces the per-sentence timeline for tagged narration text.
// Empty input yields zero sentences and zero duration; it is not an error.
func (e *Estimator) Estimate(taggedText, lang, defaultVoice, fallbackRate string) Estimate {
	segments := e.segmenter.Split(taggedText, defaultVoice)
	baseWPM := lookupBaseWPM(lang, defaultVoice)

	sentences := make([]Sentence, 0, len(segments))
	currentTime := 0.0

	for i, seg := range segments {
		words := len(strings.Fields(seg.Text))

		rateTag := seg.Rate
		if rateTag == "" {
			rateTag = fallbackRate
		}
		ratePct := parseRatePct(rateTag)

		effWPM := float64(baseWPM) * (1 + ratePct/100)
		if effWPM < minWPM {
			effWPM = minWPM
		}
		if effWPM > maxWPM {
			effWPM = maxWPM
		}

		spokenSec := 0.0
		if words > 0 {
			spokenSec = float64(words) / effWPM * 60
		}

		punctMs := countPauseMs(seg.Text)
		duration := spokenSec + float64(punctMs+seg.PauseAfter)/1000

		start := currentTime
		end := start + duration

		sentences = append(sentences, Sentence{
			Index:    i,
			Text:     seg.Text,
			Start:    round3(start),
			End:      round3(end),
			Duration: round3(duration),
			Words:    words,
			RatePct:  ratePct,
			EffWPM:   math.Round(effWPM*10) / 10,
		})

		currentTime = end
	}

	return Estimate{
		TotalDuration: round3(currentTime),
		SentenceCount: len(sentences),
		BaseWPM:       baseWPM,
		Lang:          lang,
		Voice:         defaultVoice,
		Sentences:     sentences,
	}
}

// countPauseMs weights punctuation marks in a clean sentence. Devanagari
// terminators weigh the same as Latin ones.
func countPauseMs(text string) int {
	commas := strings.Count(text, ",")
	terminals := strings.Count(text, ".") +
		strings.Count(text, "।") +
		strings.Count(text, "॥") +
		strings.Count(text, "?") +
		strings.Count(text, "!")
	ellipses := strings.Count(text, "…") + strings.Count(text, "...")

	return commas*commaPauseMs + terminals*terminalPauseMs + ellipses*ellipsisPauseMs
}

func lookupBaseWPM(lang, voice string) int {
	if wpm, ok := voiceWPM[voice]; ok {
		return wpm
	}
	if wpm, ok := langWPM[lang]; ok {
		return wpm
	}
	return defaultWPM
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
