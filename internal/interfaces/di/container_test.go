package di

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ue4-rocket-build/ue4rb/internal/core/domain"
	"github.com/ue4-rocket-build/ue4rb/internal/interfaces/cli"
)

// engineFixture lays out a fake engine whose RunUAT.sh echoes its arguments
// and exits with exitCode
type engineFixture struct {
	home    string
	work    string
	engine  string
	staging string
	plugin  string
}

func newEngineFixture(t *testing.T, exitCode int) *engineFixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("end-to-end tests run RunUAT.sh through /bin/sh")
	}

	root := t.TempDir()
	f := &engineFixture{
		home:    filepath.Join(root, "home"),
		work:    filepath.Join(root, "work"),
		engine:  filepath.Join(root, "UE_5.1"),
		staging: filepath.Join(root, "staging"),
	}

	batchFiles := filepath.Join(f.engine, "Engine", "Build", "BatchFiles")
	require.NoError(t, os.MkdirAll(batchFiles, 0755))
	script := fmt.Sprintf("#!/bin/sh\nfor a in \"$@\"; do echo \"uat-arg:$a\"; done\nexit %d\n", exitCode)
	require.NoError(t, os.WriteFile(filepath.Join(batchFiles, "RunUAT.sh"), []byte(script), 0755))

	configDir := filepath.Join(f.home, ".ue4-rocket-build")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	config := fmt.Sprintf(`{"engine_paths":{"5.1":%q},"staging_paths":{"5.1":%q}}`, f.engine, f.staging)
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte(config), 0644))

	f.plugin = filepath.Join(f.work, "MyPlugin", "MyPlugin.uplugin")
	require.NoError(t, os.MkdirAll(filepath.Dir(f.plugin), 0755))
	require.NoError(t, os.WriteFile(f.plugin, []byte(`{"EngineVersion":"5.1.2","FriendlyName":"My Plugin"}`), 0644))

	return f
}

func (f *engineFixture) container(t *testing.T) (*Container, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return f.containerWithOptions(t, Options{})
}

func (f *engineFixture) containerWithOptions(t *testing.T, opts Options) (*Container, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := domain.Environment{
		OS:      runtime.GOOS,
		WorkDir: f.work,
		Getenv: func(key string) string {
			if key == "HOME" {
				return f.home
			}
			return ""
		},
	}

	opts.Env = &env
	opts.Stdin = strings.NewReader("")
	opts.Stdout = &stdout
	opts.Stderr = &stderr

	c, err := NewContainerWithOptions(opts)
	require.NoError(t, err)
	return c, &stdout, &stderr
}

func TestContainer_EndToEnd_Success(t *testing.T) {
	f := newEngineFixture(t, 0)
	c, stdout, stderr := f.container(t)

	code := cli.Execute(context.Background(), c.GetCLIContainer(), []string{"--uplugin", filepath.Join("MyPlugin", "MyPlugin.uplugin")})

	out := ansi.Strip(stdout.String())
	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, out, "Running Rocket Build ...")
	assert.Contains(t, out, "Engine: 5.1 ("+f.engine+")")
	assert.Contains(t, out, "UAT: "+filepath.Join(f.engine, "Engine", "Build", "BatchFiles", "RunUAT.sh"))
	assert.Contains(t, out, "uat-arg:BuildPlugin\n")
	assert.Contains(t, out, "uat-arg:-Plugin="+f.plugin+"\n")
	assert.Contains(t, out, "uat-arg:-Package="+f.staging+"\n")
	assert.Contains(t, out, "uat-arg:-Rocket\n")
	assert.Contains(t, out, "Build Success")
	assert.Contains(t, out, "Plugin has been packaged in "+f.staging)
	assert.Empty(t, stderr.String())
}

func TestContainer_EndToEnd_BuildFailureMirrorsExitCode(t *testing.T) {
	f := newEngineFixture(t, 5)
	c, stdout, stderr := f.container(t)

	code := cli.Execute(context.Background(), c.GetCLIContainer(), []string{"-U", f.plugin})

	out := ansi.Strip(stdout.String())
	assert.Equal(t, 5, code)
	assert.Contains(t, out, "Build Error")
	assert.Contains(t, out, "Something went wrong, check stderr")
	assert.NotContains(t, stderr.String(), "ERROR:", "a failed build is reported once, on stdout")
}

func TestContainer_EndToEnd_SpawnFailure(t *testing.T) {
	f := newEngineFixture(t, 0)
	runUAT := filepath.Join(f.engine, "Engine", "Build", "BatchFiles", "RunUAT.sh")
	require.NoError(t, os.Remove(runUAT))
	c, stdout, stderr := f.container(t)

	code := cli.Execute(context.Background(), c.GetCLIContainer(), []string{"-u", f.plugin})

	assert.Equal(t, 1, code)
	assert.Contains(t, ansi.Strip(stdout.String()), "Build Error")
	assert.Contains(t, stderr.String(), "ERROR: failed to start "+runUAT)
}

func TestContainer_EndToEnd_CancellationStopsRunUAT(t *testing.T) {
	f := newEngineFixture(t, 0)
	runUAT := filepath.Join(f.engine, "Engine", "Build", "BatchFiles", "RunUAT.sh")
	require.NoError(t, os.WriteFile(runUAT, []byte("#!/bin/sh\nexec sleep 30\n"), 0755))
	c, stdout, _ := f.containerWithOptions(t, Options{CancelWaitDelay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	code := cli.Execute(ctx, c.GetCLIContainer(), []string{"-u", f.plugin})

	assert.NotEqual(t, 0, code)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Contains(t, ansi.Strip(stdout.String()), "Build Error")
}

func TestContainer_DebugFlagEnablesDiagnostics(t *testing.T) {
	f := newEngineFixture(t, 0)
	c, _, stderr := f.container(t)

	code := cli.Execute(context.Background(), c.GetCLIContainer(), []string{"--debug", "-u", f.plugin})

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "resolved build context")
	assert.Contains(t, stderr.String(), "RunUAT exited")
}

func TestNewContainer_UsesProcessEnvironment(t *testing.T) {
	c, err := NewContainer()
	require.NoError(t, err)

	assert.Equal(t, runtime.GOOS, c.Env.OS)
	assert.NotNil(t, c.GetCLIContainer().BuildService)
}
