package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain"
)

const (
	// DirName is the per-user config directory under the home directory
	DirName = ".ue4-rocket-build"

	// FileName is the config file inside DirName
	FileName = "config.json"

	// PathEnvVar overrides the config location when set
	PathEnvVar = "UE4RB_CONFIG"
)

// Config maps engine version keys ("5.1") to engine install and staging directories
type Config struct {
	EnginePaths  map[string]string `json:"engine_paths"`
	StagingPaths map[string]string `json:"staging_paths"`

	// Filename is the file the config was loaded from
	Filename string `json:"-"`
}

// Path returns the config file location for env:
// $UE4RB_CONFIG when set, otherwise <home>/.ue4-rocket-build/config.json
func Path(env domain.Environment) (string, error) {
	if override := env.Lookup(PathEnvVar); override != "" {
		return env.Abs(override), nil
	}

	home := env.HomeDir()
	if home == "" {
		homeVar := "HOME"
		if env.IsWindows() {
			homeVar = "USERPROFILE"
		}
		return "", fmt.Errorf("cannot locate config file: %s is not set", homeVar)
	}

	return filepath.Join(home, DirName, FileName), nil
}

// Load reads the config file at path. A missing file is reported as
// KindConfigNotFound; read and parse failures carry the file name.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ConfigNotFound(path)
		}
		return nil, apperrors.MalformedFile(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.MalformedFile(path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.MalformedFile(path, err)
	}
	cfg.Filename = path

	return cfg, nil
}

// EnginePath returns the engine directory for key. Empty entries count as unregistered.
func (c *Config) EnginePath(key string) (string, bool) {
	return lookup(c.EnginePaths, key)
}

// StagingPath returns the staging directory for key. Empty entries count as unregistered.
func (c *Config) StagingPath(key string) (string, bool) {
	return lookup(c.StagingPaths, key)
}

// Source returns the file the config was loaded from
func (c *Config) Source() string {
	return c.Filename
}

func lookup(paths map[string]string, key string) (string, bool) {
	path, ok := paths[key]
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

var _ domain.PathRegistry = (*Config)(nil)
