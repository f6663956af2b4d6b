package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EnigmaCurry/shell-scene/command"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/logging"
	"github.com/EnigmaCurry/shell-scene/pkg/tmux"
	"github.com/EnigmaCurry/shell-scene/testutil"
)

func newTestHook(t *testing.T, recorder string) (*HookRunner, *bytes.Buffer) {
	t.Helper()
	var status bytes.Buffer
	return &HookRunner{
		Builder: command.NewSafeBuilder(),
		Logger:  logging.NewLogger("record-hook-test"),
		Pretty: logging.NewPrettyLogger(StatusPrefix).
			WithWriter(&status).
			WithStyles(logging.PlainPrettyStyles()),
		RecorderBinary: recorder,
		Shell:          []string{"sh"},
	}, &status
}

// newHookSession returns a session with a unique name whose tmux server is
// killed when the test ends.
func newHookSession(t *testing.T, h *HookRunner) (Session, *tmux.Client) {
	t.Helper()
	testutil.RequireTmux(t)

	s := newTestSession(t)
	s.Name = "scene-test-" + testutil.RandomString(8)

	client, err := h.Client(s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.KillServer(context.Background()) })
	return s, client
}

func TestHookPrepareIsIdempotent(t *testing.T) {
	h, _ := newTestHook(t, "asciinema")
	s, client := newHookSession(t, h)
	ctx := context.Background()

	require.NoError(t, h.Prepare(ctx, client, s))
	require.NoError(t, h.Prepare(ctx, client, s))

	sessions, err := client.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{s.Name}, sessions)

	cols, rows, err := client.WindowSize(ctx, tmux.FirstWindow(s.Name))
	require.NoError(t, err)
	assert.Equal(t, s.Cols, cols)
	assert.Equal(t, s.Rows, rows)

	status, err := client.GlobalOption(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, "off", status)

	windowSize, err := client.GlobalOption(ctx, "window-size")
	require.NoError(t, err)
	assert.Equal(t, "manual", windowSize)
}

func TestHookPrepareResizesExistingSession(t *testing.T) {
	h, _ := newTestHook(t, "asciinema")
	s, client := newHookSession(t, h)
	ctx := context.Background()

	require.NoError(t, h.Prepare(ctx, client, s))

	s.Cols, s.Rows = 120, 40
	require.NoError(t, h.Prepare(ctx, client, s))

	cols, rows, err := client.WindowSize(ctx, tmux.FirstWindow(s.Name))
	require.NoError(t, err)
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
}

func TestHookRunRecordsAndKeepsSession(t *testing.T) {
	bin := t.TempDir()
	argsFile := filepath.Join(bin, "args")
	h, status := newTestHook(t, "")
	h.RecorderBinary = testutil.FakeBin(t, bin, "asciinema", recordArgs(argsFile, "exit 0"))
	s, client := newHookSession(t, h)
	ctx := context.Background()

	require.NoError(t, h.Run(ctx, s))

	assert.Equal(t, []string{
		"rec", "--overwrite", "-q",
		"--cols", "100", "--rows", "30",
		s.Output,
		"-c", client.AttachCommand(s.Name),
	}, testutil.ReadLines(t, argsFile))
	assert.Contains(t, status.String(), "[ttyd] Recording to: "+s.Output+" (size 100x30)")

	exists, err := client.SessionExists(ctx, s.Name)
	require.NoError(t, err)
	assert.True(t, exists, "session must survive without kill-on-detach")

	cols, rows, err := client.WindowSize(ctx, tmux.FirstWindow(s.Name))
	require.NoError(t, err)
	assert.Equal(t, s.Cols, cols)
	assert.Equal(t, s.Rows, rows)
}

func TestHookRunTeardown(t *testing.T) {
	bin := t.TempDir()
	h, _ := newTestHook(t, "")
	h.RecorderBinary = testutil.FakeBin(t, bin, "asciinema", "exit 0")
	s, client := newHookSession(t, h)
	s.KillOnDetach = true
	ctx := context.Background()

	require.NoError(t, h.Run(ctx, s))

	exists, err := client.SessionExists(ctx, s.Name)
	require.NoError(t, err)
	assert.False(t, exists)

	sessions, err := client.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestHookRunPropagatesRecorderExit(t *testing.T) {
	bin := t.TempDir()
	h, _ := newTestHook(t, "")
	h.RecorderBinary = testutil.FakeBin(t, bin, "asciinema", "exit 5")
	s, _ := newHookSession(t, h)
	s.KillOnDetach = true

	err := h.Run(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeChildExited, errors.GetCode(err))
	assert.Equal(t, 5, errors.ExitCode(err))
}

func TestHookRunMissingRecorder(t *testing.T) {
	h, status := newTestHook(t, filepath.Join(t.TempDir(), "no-such-asciinema"))
	s, client := newHookSession(t, h)
	s.KillOnDetach = true

	err := h.Run(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
	assert.Contains(t, status.String(), "Failed to run asciinema")

	exists, err := client.SessionExists(context.Background(), s.Name)
	require.NoError(t, err)
	assert.False(t, exists, "teardown still runs after a recorder failure")
}

func TestHookRunMissingWorkdir(t *testing.T) {
	h, _ := newTestHook(t, "asciinema")
	s := newTestSession(t)
	s.Workdir = filepath.Join(s.Workdir, "missing")

	err := h.Run(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeWorkdirInvalid, errors.GetCode(err))
}

func TestHookEnvMatchesArgs(t *testing.T) {
	s := Session{Name: "demo", Cols: 80, Rows: 24, Output: "/tmp/d.cast", Workdir: "/tmp"}

	args := s.HookArgs("/bin/shell-scene")
	assert.Equal(t, []string{
		"/bin/shell-scene", HookCommand, "--child",
		"--session", "demo", "--cols", "80", "--rows", "24",
		"--out", "/tmp/d.cast", "--workdir", "/tmp",
	}, args)

	s.KillOnDetach = true
	assert.Equal(t, "--kill-on-detach", s.HookArgs("x")[len(args)])

	s.ConfigFile = "/etc/scene.yml"
	s.LogLevel = "debug"
	assert.Equal(t, []string{"--kill-on-detach", "--config", "/etc/scene.yml", "--log", "debug"},
		s.HookArgs("x")[len(args):])

	env := map[string]string{}
	for _, e := range s.HookEnv() {
		env[e.Key] = e.Value
	}
	assert.Equal(t, map[string]string{
		EnvSession:      "demo",
		EnvCols:         "80",
		EnvRows:         "24",
		EnvOutput:       "/tmp/d.cast",
		EnvWorkdir:      "/tmp",
		EnvKillOnDetach: "true",
	}, env)
}
