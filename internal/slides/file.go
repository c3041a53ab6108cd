package slides

import "context"

type fileSource struct {
	script *Script
}

// NewFileSource streams the slides of an already-generated script, in
// deck order. Used when a job file carries the full script.
func NewFileSource(script *Script) Source {
	return &fileSource{script: script}
}

func (s *fileSource) Stream(ctx context.Context) (<-chan Slide, <-chan error) {
	out := make(chan Slide, 4)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		for _, slide := range s.script.Slides {
			select {
			case out <- slide:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return out, errs
}
