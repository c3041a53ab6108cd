package pipeline

import "context"

// Pipeline defines the interface for processing one narration job.
type Pipeline interface {
	Process(ctx context.Context, jobPath string) error
}
