package cli

import (
	"context"
	"log/slog"

	"github.com/ue4-rocket-build/ue4rb/internal/application/services"
)

// runBuild hands the parsed flags to the build service
func runBuild(ctx context.Context, container *CLIContainer, opts *rootOptions, extraArgs []string) error {
	if container.Logger != nil {
		container.Logger.Debug("parsed arguments",
			slog.String("uplugin", opts.pluginPath),
			slog.Any("passthrough", extraArgs))
	}

	return container.BuildService.Run(ctx, services.BuildRequest{
		PluginArg: opts.pluginPath,
		ExtraArgs: extraArgs,
	})
}
