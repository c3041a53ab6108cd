// Package subtitle renders sentence timing windows as WebVTT and SRT
// files. Both formats carry identical cues; only timestamp punctuation
// and the header differ.
package subtitle

import (
	"fmt"
	"os"
	"strings"

	"slidecast/internal/reconcile"
)

// WriteVTT writes one cue per sentence, numbered from 1.
func WriteVTT(path string, sentences []reconcile.ScaledSentence) error {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	for _, sent := range sentences {
		fmt.Fprintf(&b, "%d\n", sent.Index+1)
		fmt.Fprintf(&b, "%s --> %s\n", vttTime(sent.Start), vttTime(sent.End))
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(sent.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	return nil
}

// WriteSRT writes the same cues with SRT timestamps (comma before the
// millisecond field).
func WriteSRT(path string, sentences []reconcile.ScaledSentence) error {
	var b strings.Builder

	for i, sent := range sentences {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTime(sent.Start), srtTime(sent.End))
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(sent.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// vttTime formats seconds as HH:MM:SS.mmm.
func vttTime(seconds float64) string {
	h, m, s, ms := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// srtTime formats seconds as HH:MM:SS,mmm.
func srtTime(seconds float64) string {
	h, m, s, ms := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// splitClock rounds to the nearest millisecond before splitting so
// 1.9995s carries into the next second instead of truncating.
func splitClock(seconds float64) (h, m, s, ms int) {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds*1000.0 + 0.5)
	ms = total % 1000
	whole := total / 1000
	h = whole / 3600
	m = (whole % 3600) / 60
	s = whole % 60
	return h, m, s, ms
}
