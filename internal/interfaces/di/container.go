package di

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ue4-rocket-build/ue4rb/internal/application/services"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain"
	domainproc "github.com/ue4-rocket-build/ue4rb/internal/core/domain/process"
	procp "github.com/ue4-rocket-build/ue4rb/internal/core/ports/process"
	"github.com/ue4-rocket-build/ue4rb/internal/infrastructure/process"
	"github.com/ue4-rocket-build/ue4rb/internal/interfaces/cli"
	"github.com/ue4-rocket-build/ue4rb/internal/logging"
)

// Options overrides the process-wide defaults the container would otherwise use.
// Zero fields fall back to the real environment and standard streams.
type Options struct {
	Env      *domain.Environment
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Executor procp.Executor

	// CancelWaitDelay bounds how long RunUAT may keep running after an
	// interrupt before it is killed
	CancelWaitDelay time.Duration
}

// Container holds all application dependencies
type Container struct {
	Env domain.Environment

	// Logger writes diagnostics to stderr; LogLevel is raised by --debug
	Logger   *slog.Logger
	LogLevel *slog.LevelVar

	Executor     procp.Executor
	Reporter     *cli.ConsoleReporter
	BuildService *services.BuildService

	CLIContainer *cli.CLIContainer
}

// NewContainer creates a container bound to the running process
func NewContainer() (*Container, error) {
	return NewContainerWithOptions(Options{})
}

// NewContainerWithOptions creates and wires the container
func NewContainerWithOptions(opts Options) (*Container, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.CancelWaitDelay <= 0 {
		opts.CancelWaitDelay = process.DefaultCancelWaitDelay
	}

	c := &Container{}

	if opts.Env != nil {
		c.Env = *opts.Env
	} else {
		env, err := domain.CurrentEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize environment: %w", err)
		}
		c.Env = env
	}

	c.LogLevel = logging.NewLevel(false)
	c.Logger = logging.New(opts.Stderr, c.LogLevel)

	c.Executor = opts.Executor
	if c.Executor == nil {
		c.Executor = process.NewExecutorWithOptions(opts.Stdin, opts.Stdout, opts.Stderr, nil).
			WithCancellation(domainproc.SignalInterrupt, opts.CancelWaitDelay)
	}

	c.Reporter = cli.NewConsoleReporter(opts.Stdout)
	c.BuildService = services.NewBuildService(c.Env, c.Executor, c.Reporter, c.Logger)

	c.CLIContainer = &cli.CLIContainer{
		BuildService: c.BuildService,
		Logger:       c.Logger,
		LogLevel:     c.LogLevel,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
	}

	return c, nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}
