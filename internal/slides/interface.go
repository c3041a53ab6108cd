package slides

import "context"

// Source produces slides progressively. Consumers receive each slide as
// soon as it exists and may start downstream work without waiting for
// the rest of the deck. The error channel carries at most one error and
// both channels are closed when the stream ends.
type Source interface {
	Stream(ctx context.Context) (<-chan Slide, <-chan error)
}
