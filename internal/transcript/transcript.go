// Package transcript renders a presentation's script and timing data as
// a docx handout for distribution alongside the video.
package transcript

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"slidecast/internal/reconcile"
	"slidecast/internal/slides"
	"slidecast/internal/timing"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// Write renders one paragraph block per slide: heading, bullet points,
// then the cleaned narration with its timing window. Slides without
// narration still appear so the handout mirrors the deck.
func Write(script *slides.Script, timings *reconcile.Timings, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), script.Title, true, 16)
	doc.AddParagraph("")

	windows := slideWindows(timings)

	for _, slide := range script.Slides {
		heading := slide.Title
		if w, ok := windows[slide.SlideIndex+1]; ok {
			heading = fmt.Sprintf("%s  (%s)", slide.Title, formatWindow(w.Start, w.End))
		}
		addStyledRun(doc.AddParagraph(""), heading, true, headingSize(slide.Type))

		for _, point := range slide.Points {
			p := doc.AddParagraph("")
			p.AddText("• " + point).Font(fontName).Size(fontSize).Color("000000")
		}

		if notes := timing.StripTags(slide.SpeakerNotes); notes != "" {
			p := doc.AddParagraph("")
			p.AddText(notes).Font(fontName).Size(fontSize).Color("333333").Italic(true)
		}

		doc.AddParagraph("")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func slideWindows(timings *reconcile.Timings) map[int]reconcile.SlideTiming {
	windows := make(map[int]reconcile.SlideTiming)
	if timings == nil {
		return windows
	}
	for _, s := range timings.Slides {
		windows[s.SlideNumber] = s
	}
	return windows
}

func formatWindow(start, end float64) string {
	return fmt.Sprintf("%s - %s", formatClock(start), formatClock(end))
}

func formatClock(seconds float64) string {
	whole := int(seconds + 0.5)
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}

func headingSize(slideType string) uint64 {
	if slideType == slides.TypeTitle {
		return 15
	}
	return 14
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
