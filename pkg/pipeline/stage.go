// Package pipeline provides the stage infrastructure shared by export paths.
package pipeline

import (
	"context"
)

// Stage is one step of an export, such as a static crop pass or the
// segment concat. The orchestrator composes stages and owns their temp files.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to Stage, mostly for tests and small
// one-off steps.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
