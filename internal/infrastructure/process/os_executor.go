package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain/process"
	procp "github.com/ue4-rocket-build/ue4rb/internal/core/ports/process"
)

// Executor implements the process Executor port on top of os/exec.
// The child shares the configured stdio streams; nothing is captured.
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	env    []string

	// cancelSignal is sent to the child when the run context is cancelled.
	// If the child has not exited waitDelay later it is killed.
	cancelSignal process.ProcessSignal
	waitDelay    time.Duration
}

// DefaultCancelWaitDelay is how long a cancelled child may run before it is killed
const DefaultCancelWaitDelay = 10 * time.Second

// NewExecutorWithOptions creates an executor with explicit streams and base
// environment. A nil env means the parent's environment.
func NewExecutorWithOptions(stdin io.Reader, stdout, stderr io.Writer, env []string) *Executor {
	if env == nil {
		env = os.Environ()
	}

	return &Executor{
		stdin:        stdin,
		stdout:       stdout,
		stderr:       stderr,
		env:          env,
		cancelSignal: process.SignalInterrupt,
		waitDelay:    DefaultCancelWaitDelay,
	}
}

// WithCancellation returns a copy of the executor that sends signal on
// cancellation and kills the child after waitDelay
func (e *Executor) WithCancellation(signal process.ProcessSignal, waitDelay time.Duration) *Executor {
	clone := *e
	clone.cancelSignal = signal
	clone.waitDelay = waitDelay
	return &clone
}

// Run starts cmd, waits for it to exit and returns its exit code.
// The wait is unbounded unless ctx is cancelled.
func (e *Executor) Run(ctx context.Context, cmd process.Command) (int, error) {
	execCmd := exec.CommandContext(ctx, cmd.Executable(), cmd.Args()...)

	execCmd.Env = append([]string(nil), e.env...)

	execCmd.Stdin = e.stdin
	execCmd.Stdout = e.stdout
	execCmd.Stderr = e.stderr

	execCmd.Cancel = func() error {
		if err := execCmd.Process.Signal(ConvertSignal(e.cancelSignal)); err != nil {
			// Windows only supports Kill
			return execCmd.Process.Kill()
		}
		return nil
	}
	execCmd.WaitDelay = e.waitDelay

	if err := execCmd.Start(); err != nil {
		return -1, apperrors.SpawnFailed(cmd.Executable(), err)
	}

	err := execCmd.Wait()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed waiting for %s: %w", cmd.Executable(), err)
	}

	return 0, nil
}

// ConvertSignal converts domain signal to OS signal
func ConvertSignal(signal process.ProcessSignal) os.Signal {
	switch signal {
	case process.SignalTerminate:
		return syscall.SIGTERM
	case process.SignalInterrupt:
		return syscall.SIGINT
	case process.SignalKill:
		return syscall.SIGKILL
	default:
		return syscall.SIGTERM
	}
}

var _ procp.Executor = (*Executor)(nil)
