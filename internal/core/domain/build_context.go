package domain

import (
	"path/filepath"

	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
)

// PathRegistry maps engine version keys to engine and staging directories
type PathRegistry interface {
	// EnginePath returns the engine install directory registered for key
	EnginePath(key string) (string, bool)

	// StagingPath returns the staging directory registered for key
	StagingPath(key string) (string, bool)

	// Source names where the registry was loaded from, for error messages
	Source() string
}

// BuildContext is everything needed to run one plugin build
type BuildContext struct {
	EngineVersion string
	EngineDir     string
	StagingDir    string
	PluginPath    string
	RunUAT        string

	// ExtraArgs are appended after the fixed RunUAT arguments
	ExtraArgs []string
}

// RunUATPath returns the build-automation script under engineDir for the host OS
func RunUATPath(env Environment, engineDir string) string {
	script := "RunUAT.sh"
	if env.IsWindows() {
		script = "RunUAT.bat"
	}
	return filepath.Join(engineDir, "Engine", "Build", "BatchFiles", script)
}

// Resolve looks up key in registry and builds the context for pluginPath.
// The engine lookup is checked before the staging lookup.
func Resolve(env Environment, registry PathRegistry, pluginPath, key string, extraArgs []string) (BuildContext, error) {
	enginePath, ok := registry.EnginePath(key)
	if !ok {
		return BuildContext{}, apperrors.UnregisteredEngine(key, registry.Source())
	}

	stagingPath, ok := registry.StagingPath(key)
	if !ok {
		return BuildContext{}, apperrors.UnregisteredStaging(key, registry.Source())
	}

	engineDir := env.Abs(enginePath)

	return BuildContext{
		EngineVersion: key,
		EngineDir:     engineDir,
		StagingDir:    env.Abs(stagingPath),
		PluginPath:    env.Abs(pluginPath),
		RunUAT:        RunUATPath(env, engineDir),
		ExtraArgs:     append([]string(nil), extraArgs...),
	}, nil
}

// Arguments returns the RunUAT argument list
func (c BuildContext) Arguments() []string {
	args := []string{
		"BuildPlugin",
		"-Plugin=" + c.PluginPath,
		"-Package=" + c.StagingDir,
		"-Rocket",
	}
	return append(args, c.ExtraArgs...)
}
