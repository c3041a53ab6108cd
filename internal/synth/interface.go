package synth

import "context"

// Synthesizer turns one slide's tagged speaker notes into a narration
// audio file at outputPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}
