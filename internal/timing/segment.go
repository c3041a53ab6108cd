package timing

import (
	"regexp"
	"strconv"
	"strings"
)

// Segment is one sentence of narration with the prosody markers that
// applied to it. Markers use the inline square-bracket form produced by
// the script generator: [voice=..] [rate=+10%] [pitch=-2st] [pause=300ms].
type Segment struct {
	Text       string
	Voice      string
	Rate       string
	Pitch      string
	PauseAfter int // milliseconds, 0 when absent
}

// Segmenter splits tagged narration text into sentence segments. The
// default implementation is punctuation-driven; it is an interface so a
// smarter boundary detector can replace it without touching estimation
// or reconciliation.
type Segmenter interface {
	Split(text, defaultVoice string) []Segment
	// CountTerminals counts sentence-ending punctuation in raw text. The
	// slide mapping heuristic relies on the same terminal set as Split.
	CountTerminals(text string) int
}

var (
	reBoundary = regexp.MustCompile(`([.!?।॥])\s+`)
	reVoice    = regexp.MustCompile(`^\s*\[voice=([\w-]+)\]`)
	reStyle    = regexp.MustCompile(`^\s*\[style=([\w-]+)\]`)
	reRate     = regexp.MustCompile(`^\s*\[rate=([+-]?\d+%)\]`)
	rePitch    = regexp.MustCompile(`^\s*\[pitch=([+-]?\d+st)\]`)
	rePause    = regexp.MustCompile(`\[pause=(\d+)ms\]\s*$`)
	reEmphasis = regexp.MustCompile(`\[emphasis\](.*?)\[/emphasis\]`)
	reAnyTag   = regexp.MustCompile(`\[/?[^\]]+\]`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reRatePct  = regexp.MustCompile(`^([+-]?\d+)%`)
)

// PunctSegmenter splits on sentence-ending punctuation followed by
// whitespace. Latin terminators plus the Devanagari purna viram and
// double danda are treated as boundaries.
type PunctSegmenter struct{}

func NewPunctSegmenter() Segmenter {
	return PunctSegmenter{}
}

func (PunctSegmenter) Split(text, defaultVoice string) []Segment {
	var segments []Segment

	for _, raw := range splitSentences(text) {
		sentence := raw

		voice, sentence := extractTag(reVoice, sentence)
		_, sentence = extractTag(reStyle, sentence) // style is not supported downstream
		rate, sentence := extractTag(reRate, sentence)
		pitch, sentence := extractTag(rePitch, sentence)

		pauseAfter := 0
		if m := rePause.FindStringSubmatch(sentence); m != nil {
			pauseAfter, _ = strconv.Atoi(m[1])
			sentence = rePause.ReplaceAllString(sentence, "")
		}

		// Any tags still present are malformed; strip them.
		sentence = reEmphasis.ReplaceAllString(sentence, "$1")
		sentence = reAnyTag.ReplaceAllString(sentence, "")
		sentence = strings.TrimSpace(reSpaces.ReplaceAllString(sentence, " "))

		if sentence == "" {
			continue
		}

		if voice == "" {
			voice = defaultVoice
		}

		segments = append(segments, Segment{
			Text:       sentence,
			Voice:      voice,
			Rate:       rate,
			Pitch:      pitch,
			PauseAfter: pauseAfter,
		})
	}

	return segments
}

func (PunctSegmenter) CountTerminals(text string) int {
	return strings.Count(text, ".") +
		strings.Count(text, "?") +
		strings.Count(text, "!") +
		strings.Count(text, "।") +
		strings.Count(text, "॥")
}

// splitSentences keeps the terminating punctuation with its sentence.
func splitSentences(text string) []string {
	marked := reBoundary.ReplaceAllString(text, "$1\x1f")

	var out []string
	for _, part := range strings.Split(marked, "\x1f") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// StripTags removes every nuance tag, keeping emphasis content.
func StripTags(text string) string {
	clean := reEmphasis.ReplaceAllString(text, "$1")
	clean = reAnyTag.ReplaceAllString(clean, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(clean, " "))
}

func extractTag(re *regexp.Regexp, text string) (string, string) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", text
	}
	return m[1], strings.TrimSpace(re.ReplaceAllString(text, ""))
}

// parseRatePct turns "+10%" / "-20%" into a signed percentage.
// Anything unparseable means no adjustment.
func parseRatePct(rate string) float64 {
	m := reRatePct.FindStringSubmatch(strings.TrimSpace(rate))
	if m == nil {
		return 0
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return pct
}
