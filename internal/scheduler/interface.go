package scheduler

import (
	"context"
	"errors"

	"slidecast/internal/slides"
)

// Synthesizer produces narration audio for one slide's speaker notes,
// writing a playable file to outputPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}

// ImageFetcher retrieves illustration images for one slide, returning
// local file paths. An empty list is a valid result.
type ImageFetcher interface {
	FetchImagesForSlide(ctx context.Context, slide slides.Slide, destDir string) ([]string, error)
}

// AudioStatus describes the outcome of a slide's narration task.
type AudioStatus string

const (
	AudioOK      AudioStatus = "ok"
	AudioFailed  AudioStatus = "failed"
	AudioSkipped AudioStatus = "skipped" // slide had no speaker notes
)

// Result is the aggregate of one streaming run. Chunks and images are
// keyed by slide index; MergedAudioPath holds the slide-ordered
// concatenation of every successful chunk.
type Result struct {
	Slides          []slides.Slide
	MergedAudioPath string
	AudioChunks     map[int]string
	AudioStatus     map[int]AudioStatus
	Images          map[int][]string
}

// ErrNoNarration is returned when not a single slide produced usable
// narration audio. Individual task failures degrade; a globally silent
// deck cannot be reconciled and is fatal.
var ErrNoNarration = errors.New("no narration audio was produced for any slide")

// Scheduler runs the per-slide production tasks under bounded
// parallelism and merges their outputs deterministically.
type Scheduler interface {
	Run(ctx context.Context, stream <-chan slides.Slide, voice, workDir string) (*Result, error)
}
