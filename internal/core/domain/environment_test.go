package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_HomeDir(t *testing.T) {
	vars := map[string]string{
		"HOME":        "/home/dev",
		"USERPROFILE": `C:\Users\dev`,
	}
	getenv := func(key string) string { return vars[key] }

	assert.Equal(t, "/home/dev", Environment{OS: "linux", Getenv: getenv}.HomeDir())
	assert.Equal(t, "/home/dev", Environment{OS: "darwin", Getenv: getenv}.HomeDir())
	assert.Equal(t, `C:\Users\dev`, Environment{OS: "windows", Getenv: getenv}.HomeDir())
	assert.Empty(t, Environment{OS: "linux"}.HomeDir(), "nil Getenv should behave as unset")
}

func TestEnvironment_Abs(t *testing.T) {
	workDir := t.TempDir()
	env := Environment{WorkDir: workDir}

	assert.Equal(t, filepath.Join(workDir, "a", "b"), env.Abs(filepath.Join("a", "b")))
	assert.Equal(t, filepath.Join(workDir, "a"), env.Abs(filepath.Join("a", "b", "..")))
	assert.Equal(t, workDir, env.Abs(workDir))
}

func TestCurrentEnvironment(t *testing.T) {
	env, err := CurrentEnvironment()
	require.NoError(t, err)

	assert.NotEmpty(t, env.OS)
	assert.True(t, filepath.IsAbs(env.WorkDir))
	assert.NotNil(t, env.Getenv)
}
