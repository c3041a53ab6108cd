package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteCapture runs a command and returns stdout and stderr separately,
	// even when the command exits non-zero. Tools like ffmpeg report to stderr.
	ExecuteCapture(ctx context.Context, name string, args ...string) (string, string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports whether a binary is resolvable, returning its path.
	LookPath(name string) (string, error)
}
