package watcher

import "context"

// Watcher defines the interface for job inbox monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles job file events
type EventHandler func(ctx context.Context, jobPath string) error
