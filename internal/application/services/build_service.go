package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
	"github.com/ue4-rocket-build/ue4rb/internal/config"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain/process"
	procp "github.com/ue4-rocket-build/ue4rb/internal/core/ports/process"
)

// BuildReporter receives the user-facing milestones of a build
type BuildReporter interface {
	// BuildStarting is called once paths are resolved, before RunUAT is spawned
	BuildStarting(build domain.BuildContext, descriptor *domain.PluginDescriptor)

	// BuildFinished is called with the RunUAT exit code, or -1 if it never started
	BuildFinished(build domain.BuildContext, exitCode int)
}

// BuildRequest is the parsed command line of one run
type BuildRequest struct {
	// PluginArg is the --uplugin value exactly as given
	PluginArg string

	// ExtraArgs are the arguments after "--", appended to the RunUAT call
	ExtraArgs []string
}

// BuildService runs the load config → read descriptor → resolve → RunUAT pipeline
type BuildService struct {
	env      domain.Environment
	executor procp.Executor
	reporter BuildReporter
	logger   *slog.Logger
}

// NewBuildService creates a new build service
func NewBuildService(env domain.Environment, executor procp.Executor, reporter BuildReporter, logger *slog.Logger) *BuildService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &BuildService{
		env:      env,
		executor: executor,
		reporter: reporter,
		logger:   logger,
	}
}

// LoadConfig locates and loads the user's config file
func (s *BuildService) LoadConfig() (*config.Config, error) {
	path, err := config.Path(s.env)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loading config", slog.String("path", path))
	return config.Load(path)
}

// Prepare validates the request and resolves the build context without running anything
func (s *BuildService) Prepare(req BuildRequest) (domain.BuildContext, *domain.PluginDescriptor, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return domain.BuildContext{}, nil, err
	}

	pluginPath, err := domain.ValidatePluginPath(s.env, req.PluginArg)
	if err != nil {
		return domain.BuildContext{}, nil, err
	}

	descriptor, err := domain.ReadPluginDescriptor(pluginPath)
	if err != nil {
		return domain.BuildContext{}, nil, err
	}

	key := descriptor.EngineVersionKey()
	s.logger.Debug("read plugin descriptor",
		slog.String("plugin", pluginPath),
		slog.String("engine_version", descriptor.EngineVersion),
		slog.String("key", key))

	build, err := domain.Resolve(s.env, cfg, pluginPath, key, req.ExtraArgs)
	if err != nil {
		return domain.BuildContext{}, nil, err
	}

	s.logger.Debug("resolved build context",
		slog.String("engine", build.EngineDir),
		slog.String("staging", build.StagingDir),
		slog.String("uat", build.RunUAT))

	return build, descriptor, nil
}

// Run executes the whole pipeline. A RunUAT exit code other than zero is
// returned as a KindBuildFailed error carrying that code.
func (s *BuildService) Run(ctx context.Context, req BuildRequest) error {
	build, descriptor, err := s.Prepare(req)
	if err != nil {
		return err
	}

	cmd, err := process.NewCommand(build.RunUAT, build.Arguments())
	if err != nil {
		return fmt.Errorf("failed to create RunUAT command: %w", err)
	}

	s.reporter.BuildStarting(build, descriptor)
	s.logger.Debug("spawning", slog.Any("argv", cmd.FullCommandLine()))

	code, err := s.executor.Run(ctx, cmd)
	if err != nil {
		s.logger.Debug("RunUAT did not run", slog.Any("err", err))
		s.reporter.BuildFinished(build, -1)
		return err
	}

	s.logger.Debug("RunUAT exited", slog.Int("code", code))
	s.reporter.BuildFinished(build, code)

	if code != 0 {
		return apperrors.BuildFailed(build.RunUAT, code)
	}
	return nil
}
