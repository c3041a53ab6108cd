package slides

import (
	"encoding/json"
	"fmt"
	"os"
)

// Slide types as emitted by the script generator.
const (
	TypeTitle   = "title"
	TypeContent = "content"
)

// Slide is one record of the slide/script stream.
type Slide struct {
	SlideIndex   int      `json:"slide_index"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Points       []string `json:"points"`
	SpeakerNotes string   `json:"speaker_notes"`
}

// Script is a complete presentation script document.
type Script struct {
	Title  string  `json:"title"`
	Lang   string  `json:"lang"`
	Voice  string  `json:"voice"`
	Slides []Slide `json:"slides"`
}

// Narration concatenates the speaker notes of every slide, in order.
func (s *Script) Narration() string {
	text := ""
	for _, slide := range s.Slides {
		if slide.SpeakerNotes == "" {
			continue
		}
		if text != "" {
			text += " "
		}
		text += slide.SpeakerNotes
	}
	return text
}

// LoadScript reads a script JSON document from disk and normalizes slide
// indices to their position in the deck.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i := range script.Slides {
		script.Slides[i].SlideIndex = i
		if script.Slides[i].Type == "" {
			script.Slides[i].Type = TypeContent
		}
	}

	return &script, nil
}

// SaveScript writes a script document to disk.
func SaveScript(script *Script, path string) error {
	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}
