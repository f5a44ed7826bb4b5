package process

import (
	"context"

	"github.com/ue4-rocket-build/ue4rb/internal/core/domain/process"
)

// Executor runs a command to completion with the caller's stdio attached.
//
// Run returns the child's exit code once it terminates. A child that could not
// be started at all yields an error and no exit code; a child that ran and
// failed yields its non-zero code and a nil error.
type Executor interface {
	Run(ctx context.Context, cmd process.Command) (int, error)
}
