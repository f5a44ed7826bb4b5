package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Environment carries the host facts a build run depends on. Everything that
// would otherwise be read from the process (OS, working directory, variables)
// goes through this value so tests can supply their own.
type Environment struct {
	// OS is a GOOS value such as "linux" or "windows"
	OS string

	// WorkDir is the directory relative paths are resolved against
	WorkDir string

	// Getenv looks up an environment variable
	Getenv func(key string) string
}

// CurrentEnvironment captures the environment of the running process
func CurrentEnvironment() (Environment, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return Environment{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	return Environment{
		OS:      runtime.GOOS,
		WorkDir: workDir,
		Getenv:  os.Getenv,
	}, nil
}

// IsWindows reports whether the environment describes a Windows host
func (e Environment) IsWindows() bool {
	return e.OS == "windows"
}

// Lookup returns the value of an environment variable, or "" when unset
func (e Environment) Lookup(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// HomeDir returns the user's home directory: USERPROFILE on Windows, HOME elsewhere
func (e Environment) HomeDir() string {
	if e.IsWindows() {
		return e.Lookup("USERPROFILE")
	}
	return e.Lookup("HOME")
}

// Abs resolves path against WorkDir unless it is already absolute
func (e Environment) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.WorkDir, path)
}
