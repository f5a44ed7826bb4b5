package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ue4-rocket-build/ue4rb/internal/application/services"
	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	BuildService *services.BuildService
	Logger       *slog.Logger
	LogLevel     *slog.LevelVar
	Stdout       io.Writer
	Stderr       io.Writer
}

// rootOptions holds the parsed flags of the root command
type rootOptions struct {
	pluginPath string
	debug      bool
}

// NewRootCommand creates the ue4rb command. It has no subcommands; running it
// performs one plugin build.
func NewRootCommand(container *CLIContainer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ue4rb -U <path to .uplugin file> [-- extra RunUAT arguments]",
		Short: "Rocket build system for UE4 Plugins",
		Long: `ue4rb packages an Unreal Engine plugin with RunUAT BuildPlugin.

The engine and staging directories are looked up in
~/.ue4-rocket-build/config.json by the plugin's EngineVersion.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug && container.LogLevel != nil {
				container.LogLevel.Set(slog.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), container, opts, passthroughArgs(cmd, args))
		},
	}

	rootCmd.SetOut(container.Stdout)
	rootCmd.SetErr(container.Stderr)

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), usageText)
	})

	rootCmd.SetGlobalNormalizationFunc(pluginFlagAliases)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.pluginPath, "uplugin", "u", "", "Path to .uplugin file")
	// -U is the documented spelling; pflag allows one shorthand per flag, so it gets its own hidden flag
	flags.StringVarP(&opts.pluginPath, "uplugin-path", "U", "", "Path to .uplugin file")
	_ = flags.MarkHidden("uplugin-path")

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// pluginFlagAliases lets the one-letter aliases be spelled as long flags too (--u, --U)
func pluginFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "u":
		name = "uplugin"
	case "U":
		name = "uplugin-path"
	}
	return pflag.NormalizedName(name)
}

// passthroughArgs returns the arguments given after "--"
func passthroughArgs(cmd *cobra.Command, args []string) []string {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil
	}
	return args[dash:]
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command with args and returns the process exit code
func Execute(ctx context.Context, container *CLIContainer, args []string) int {
	rootCmd := NewRootCommand(container)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && apperrors.KindOf(err) != apperrors.KindBuildFailed {
		// a failed build has already been reported by the reporter
		fmt.Fprintf(container.Stderr, "ERROR: %v\n", err)
	}
	return apperrors.ExitCode(err)
}
