package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EnigmaCurry/shell-scene/config"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/testutil"
)

var sceneEnv = []string{
	"SESSION", "TMUX_COLS", "TMUX_ROWS", "TT_PORT", "FONT_SIZE",
	"ASCII_OUT", "WORKING_DIRECTORY", "TMUX_KILL_ON_DETACH",
	config.EnvConfigFile, "SHELL_SCENE_LOG_LEVEL",
}

// isolate clears the scene environment and points HOME and the config
// directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range sceneEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return home
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"record", "record-hook", "completions", "config", "version"} {
		assert.NotNil(t, findCommand(root, name), name)
	}
	assert.Nil(t, findCommand(root, "completion"), "cobra's default completion command is disabled")

	hook := findCommand(root, "record-hook")
	require.NotNil(t, hook)
	assert.True(t, hook.Hidden)
	assert.NotNil(t, hook.Flags().Lookup("child"))
	assert.NotNil(t, hook.Flags().Lookup("kill-on-detach"))
	assert.Nil(t, hook.Flags().Lookup("port"), "the hook never binds a port")
	assert.Nil(t, hook.Flags().Lookup("no-browser"))

	record := findCommand(root, "record")
	require.NotNil(t, record)
	for _, name := range []string{"session", "cols", "rows", "port", "font-size", "out", "workdir", "kill-on-detach", "no-browser"} {
		assert.NotNil(t, record.Flags().Lookup(name), name)
	}
}

func TestCompletions(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion V2 for shell-scene"},
		{"zsh", "#compdef shell-scene"},
		{"fish", "complete -c shell-scene"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, _, err := execute(t, "completions", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCompletionsWithoutShell(t *testing.T) {
	out, stderr, err := execute(t, "completions")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
	assert.Empty(t, out)
	assert.Contains(t, stderr, "source <(shell-scene completions bash)")
	assert.Contains(t, stderr, "shell-scene completions fish | source")
	assert.Contains(t, stderr, "autoload -U compinit; compinit; source <(shell-scene completions zsh)")
}

func TestCompletionsRejectsUnknownShell(t *testing.T) {
	_, _, err := execute(t, "completions", "powershell")
	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
}

func TestRecordRequiresDependencies(t *testing.T) {
	isolate(t)
	t.Setenv("PATH", t.TempDir())

	_, _, err := execute(t, "record", "--no-browser")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandNotFound, errors.GetCode(err))
	sceneErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"ttyd", "tmux", "asciinema"}, sceneErr.Details["commands"])
}

func TestRecordForwardsConfigAndLogLevelToHook(t *testing.T) {
	home := isolate(t)
	bin := t.TempDir()
	argsFile := filepath.Join(bin, "ttyd.args")
	testutil.FakeBin(t, bin, "ttyd", `for a in "$@"; do printf '%s\n' "$a" >> '`+argsFile+`'; done`)
	testutil.FakeBin(t, bin, "tmux", "exit 0")
	testutil.FakeBin(t, bin, "asciinema", "exit 0")
	testutil.PrependPath(t, bin)

	configPath := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("record: {shell: [zsh, -l]}\n"), 0644))

	_, _, err := execute(t, "--config", configPath, "-v", "record", "--no-browser")
	require.NoError(t, err)

	testutil.WaitForFile(t, argsFile, 5*time.Second)
	args := testutil.ReadLines(t, argsFile)
	require.Contains(t, args, "record-hook")
	hook := args[indexOf(args, "record-hook"):]
	assert.Equal(t, []string{"--config", configPath, "--log", "debug"}, hook[len(hook)-4:])
	out := hook[indexOf(hook, "--out")+1]
	assert.True(t, strings.HasPrefix(out, filepath.Join(home, "casts")+"/"), out)
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

func TestRecordRejectsInvalidFlags(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "record", "--cols", "0")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestRecordRejectsArguments(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "record", "extra")
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	home := isolate(t)
	t.Setenv("TMUX_ROWS", "30")

	out, _, err := execute(t, "config", "show", "--session", "demo", "--cols", "100")
	require.NoError(t, err)

	assert.Contains(t, out, "session: demo")
	assert.Contains(t, out, "cols: 100")
	assert.Contains(t, out, "rows: 30")
	assert.Contains(t, out, "workdir: "+home)
	assert.Contains(t, out, "out: "+home+"/casts/demo-")
}

func TestConfigShowJSON(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "config", "show", "--json", "--kill-on-detach")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DefaultSession, cfg.Record.Session)
	assert.True(t, cfg.Record.KillOnDetach)
	assert.True(t, strings.HasSuffix(cfg.Record.Output, ".cast"))
}

func TestConfigShowMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "config", "show", "--config", "/nonexistent/shell-scene.yml")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestConfigSchema(t *testing.T) {
	out, _, err := execute(t, "config", "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, out, `"record"`)
}

func TestConfigPath(t *testing.T) {
	isolate(t)
	path := t.TempDir() + "/scene.toml"
	require.NoError(t, os.WriteFile(path, []byte("[record]\nsession = \"x\"\n"), 0644))

	out, _, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, stderr, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "No config file found")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "shell-scene "))
	assert.Contains(t, out, "Platform:")
}
