package domain

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/ue4-rocket-build/ue4rb/internal/apperrors"
)

// PluginFileExtension is the suffix every plugin descriptor path must carry
const PluginFileExtension = ".uplugin"

// PluginDescriptor is the subset of a .uplugin file the build needs.
// Only EngineVersion is required; the names are shown in the banner when set.
type PluginDescriptor struct {
	// EngineVersion is the dotted engine version, e.g. "5.1.2"
	EngineVersion string `json:"EngineVersion"`

	FriendlyName string `json:"FriendlyName,omitempty"`
	VersionName  string `json:"VersionName,omitempty"`

	// Path is the absolute path the descriptor was read from
	Path string `json:"-"`
}

// ValidatePluginPath checks the --uplugin argument and returns its absolute form.
// The argument must be non-empty, end with ".uplugin" and exist on disk.
func ValidatePluginPath(env Environment, arg string) (string, error) {
	if arg == "" || !strings.HasSuffix(arg, PluginFileExtension) {
		return "", apperrors.InvalidPlugin(arg)
	}

	path := env.Abs(arg)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.InvalidPlugin(arg)
	}

	return path, nil
}

// ReadPluginDescriptor reads and parses the descriptor at path
func ReadPluginDescriptor(path string) (*PluginDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.MalformedFile(path, err)
	}

	var file struct {
		EngineVersion json.RawMessage `json:"EngineVersion"`
		FriendlyName  string          `json:"FriendlyName"`
		VersionName   string          `json:"VersionName"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.MalformedFile(path, err)
	}

	version, ok := stringValue(file.EngineVersion)
	if !ok {
		return nil, apperrors.MalformedFile(path, errMissingEngineVersion)
	}

	return &PluginDescriptor{
		EngineVersion: version,
		FriendlyName:  file.FriendlyName,
		VersionName:   file.VersionName,
		Path:          path,
	}, nil
}

var errMissingEngineVersion = errors.New("EngineVersion is missing or not a string")

// stringValue decodes raw as a JSON string. Absent fields, null and any
// other JSON type report false.
func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// EngineVersionKey returns the config lookup key for the descriptor
func (d *PluginDescriptor) EngineVersionKey() string {
	return TruncateEngineVersion(d.EngineVersion)
}

// DisplayName returns FriendlyName followed by VersionName when set, or ""
// when the descriptor has no FriendlyName
func (d *PluginDescriptor) DisplayName() string {
	if d.FriendlyName == "" {
		return ""
	}
	if d.VersionName == "" {
		return d.FriendlyName
	}
	return d.FriendlyName + " " + d.VersionName
}

// TruncateEngineVersion drops the last dot-separated segment of version:
// "5.1.2" becomes "5.1" and "4.27.2.1" becomes "4.27.2". A version without a
// dot truncates to "".
func TruncateEngineVersion(version string) string {
	segments := strings.Split(version, ".")
	return strings.Join(segments[:len(segments)-1], ".")
}
