package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the CLI can map it to an exit code and message
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindMalformedFile
	KindInvalidPlugin
	KindUnregisteredEngine
	KindUnregisteredStaging
	KindSpawnFailed
	KindBuildFailed
)

// String returns a short name for the kind
func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "config_not_found"
	case KindMalformedFile:
		return "malformed_file"
	case KindInvalidPlugin:
		return "invalid_plugin"
	case KindUnregisteredEngine:
		return "unregistered_engine"
	case KindUnregisteredStaging:
		return "unregistered_staging"
	case KindSpawnFailed:
		return "spawn_failed"
	case KindBuildFailed:
		return "build_failed"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every stage of a build run.
//
// Path holds the file the failure is about (config file, descriptor, plugin
// argument or executable). Version holds the engine version key for lookup
// failures, and Code the subprocess exit code for KindBuildFailed.
type Error struct {
	Kind    Kind
	Path    string
	Version string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfigNotFound:
		return fmt.Sprintf("%s doesn't exist", e.Path)
	case KindMalformedFile:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case KindInvalidPlugin:
		return fmt.Sprintf("Invalid plugin file %s", e.Path)
	case KindUnregisteredEngine:
		return fmt.Sprintf("Unregistered engine path: %s, please update your config file (%s)", e.Version, e.Path)
	case KindUnregisteredStaging:
		return fmt.Sprintf("Unregistered staging path for engine: %s, please update your config file (%s)", e.Version, e.Path)
	case KindSpawnFailed:
		return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
	case KindBuildFailed:
		return fmt.Sprintf("%s exited with code %d", e.Path, e.Code)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigNotFound reports a missing configuration file at path
func ConfigNotFound(path string) *Error {
	return &Error{Kind: KindConfigNotFound, Path: path}
}

// MalformedFile annotates a read or parse failure with the file name
func MalformedFile(path string, err error) *Error {
	return &Error{Kind: KindMalformedFile, Path: path, Err: err}
}

// InvalidPlugin reports a plugin argument that is empty, has the wrong
// extension, or does not exist
func InvalidPlugin(arg string) *Error {
	return &Error{Kind: KindInvalidPlugin, Path: arg}
}

// UnregisteredEngine reports a version key missing from engine_paths
func UnregisteredEngine(version, configPath string) *Error {
	return &Error{Kind: KindUnregisteredEngine, Version: version, Path: configPath}
}

// UnregisteredStaging reports a version key missing from staging_paths
func UnregisteredStaging(version, configPath string) *Error {
	return &Error{Kind: KindUnregisteredStaging, Version: version, Path: configPath}
}

// SpawnFailed reports that the executable could not be started at all
func SpawnFailed(executable string, err error) *Error {
	return &Error{Kind: KindSpawnFailed, Path: executable, Err: err}
}

// BuildFailed reports a subprocess that ran and exited non-zero
func BuildFailed(executable string, code int) *Error {
	return &Error{Kind: KindBuildFailed, Path: executable, Code: code}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// ExitCode maps an error to the process exit code.
// nil is 0, a failed build mirrors the subprocess code, everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == KindBuildFailed && appErr.Code > 0 {
		return appErr.Code
	}
	return 1
}
