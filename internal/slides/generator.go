package slides

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"slidecast/internal/logger"
)

const outlinePrompt = `You are a presentation planner. Produce a JSON object for the topic below with this exact shape:
{"title": "...", "slides": [{"title": "...", "type": "title"}, {"title": "...", "type": "content"}, ...]}
Start with one title slide, follow with 4-8 content slides. Respond with JSON only.

Topic: %s
Language: %s`

const contentPrompt = `You are writing one slide of a narrated presentation titled "%s".
Produce a JSON object with this exact shape:
{"points": ["...", "..."], "speaker_notes": "..."}
points: 3-5 short bullet points. speaker_notes: 2-4 full spoken sentences ending with terminal punctuation.
Respond with JSON only, in language code %s.

Slide title: %s`

type outline struct {
	Title  string `json:"title"`
	Slides []struct {
		Title string `json:"title"`
		Type  string `json:"type"`
	} `json:"slides"`
}

type slideContent struct {
	Points       []string `json:"points"`
	SpeakerNotes string   `json:"speaker_notes"`
}

type generator struct {
	apiKeys    []string
	currentKey int
	model      string
	topic      string
	lang       string
	logger     logger.Logger
}

// NewGenerator streams a freshly generated script for a topic, one slide
// at a time, rotating through the supplied Gemini API keys on quota
// errors. Slide generation failures degrade to placeholder content so a
// single bad LLM call never sinks the deck.
func NewGenerator(apiKeys []string, model, topic, lang string, log logger.Logger) Source {
	return &generator{
		apiKeys: apiKeys,
		model:   model,
		topic:   topic,
		lang:    lang,
		logger:  log,
	}
}

func (g *generator) Stream(ctx context.Context) (<-chan Slide, <-chan error) {
	out := make(chan Slide, 4)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		ol, err := g.generateOutline(ctx)
		if err != nil {
			errs <- fmt.Errorf("generate outline: %w", err)
			return
		}

		g.logger.Info(ctx, "Outline ready: %q with %d slides", ol.Title, len(ol.Slides))

		for i, planned := range ol.Slides {
			slide := Slide{
				SlideIndex: i,
				Type:       planned.Type,
				Title:      planned.Title,
			}

			if planned.Type == TypeTitle {
				slide.SpeakerNotes = ""
			} else {
				slide.Type = TypeContent
				content := g.generateContent(ctx, ol.Title, planned.Title)
				slide.Points = content.Points
				slide.SpeakerNotes = content.SpeakerNotes
			}

			select {
			case out <- slide:
				g.logger.Info(ctx, "Generated slide %d: %s", i+1, slide.Title)
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return out, errs
}

func (g *generator) generateOutline(ctx context.Context) (*outline, error) {
	raw, err := g.callModel(ctx, fmt.Sprintf(outlinePrompt, g.topic, g.lang))
	if err != nil {
		return nil, err
	}

	var ol outline
	if err := json.Unmarshal(extractJSON(raw), &ol); err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	if len(ol.Slides) == 0 {
		return nil, fmt.Errorf("outline has no slides")
	}

	return &ol, nil
}

// generateContent never fails: a broken LLM response yields placeholder
// content for that slide, matching the degrade-don't-abort policy that
// the rest of the pipeline follows.
func (g *generator) generateContent(ctx context.Context, deckTitle, slideTitle string) slideContent {
	raw, err := g.callModel(ctx, fmt.Sprintf(contentPrompt, deckTitle, g.lang, slideTitle))
	if err == nil {
		var content slideContent
		if jsonErr := json.Unmarshal(extractJSON(raw), &content); jsonErr == nil && content.SpeakerNotes != "" {
			return content
		}
		err = fmt.Errorf("unusable content payload")
	}

	g.logger.Warn(ctx, "Content generation failed for %q: %v", slideTitle, err)
	return slideContent{
		Points:       []string{slideTitle},
		SpeakerNotes: fmt.Sprintf("This slide covers %s.", slideTitle),
	}
}

// callModel sends a prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *generator) callModel(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	if attempts == 0 {
		return "", fmt.Errorf("no API keys configured")
	}

	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *generator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(raw string) []byte {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return []byte(raw)
	}
	return []byte(raw[start : end+1])
}
