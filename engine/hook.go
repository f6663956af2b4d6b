package engine

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/EnigmaCurry/shell-scene/command"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/logging"
	"github.com/EnigmaCurry/shell-scene/pkg/asciinema"
	"github.com/EnigmaCurry/shell-scene/pkg/fsutil"
	"github.com/EnigmaCurry/shell-scene/pkg/process"
	"github.com/EnigmaCurry/shell-scene/pkg/tmux"
)

// DefaultShell is the program the first tmux window runs.
var DefaultShell = []string{"bash", "-l"}

// HookRunner is the hook-mode side of a recording, run by ttyd once per
// browser connection. It prepares the session's tmux server and records an
// attached client with asciinema.
type HookRunner struct {
	Builder *command.SafeBuilder
	Logger  *logrus.Entry
	Pretty  *logging.PrettyLogger

	// RecorderBinary is the asciinema program.
	RecorderBinary string
	// Shell is the command of a newly created session's first window.
	Shell []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewHookRunner returns a HookRunner wired to the real programs and the
// process's standard streams.
func NewHookRunner() *HookRunner {
	return &HookRunner{
		Builder:        command.NewSafeBuilder(),
		Logger:         logging.NewLogger("record-hook"),
		Pretty:         logging.NewPrettyLogger(StatusPrefix),
		RecorderBinary: asciinema.DefaultBinary,
		Shell:          DefaultShell,
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// Client returns the tmux client for the dedicated server of s.
func (h *HookRunner) Client(s Session) (*tmux.Client, error) {
	return tmux.NewClientWithBuilder(h.Builder, tmux.SocketName(s.Name))
}

// Run prepares the tmux session, records it until the recorder exits, then
// applies the teardown policy. A non-zero recorder exit is returned as a
// CHILD_EXITED error carrying its code.
func (h *HookRunner) Run(ctx context.Context, s Session) error {
	if err := fsutil.ValidateWorkdir(s.Workdir); err != nil {
		return err
	}
	if err := fsutil.EnsureWritableDir(fsutil.OutputDir(s.Output)); err != nil {
		return err
	}

	client, err := h.Client(s)
	if err != nil {
		return errors.SessionCreateFailed(s.Name, err)
	}

	if err := h.Prepare(ctx, client, s); err != nil {
		return err
	}

	h.Pretty.Recording(s.Output, s.Cols, s.Rows)
	recordErr := h.record(client, s)

	if s.KillOnDetach {
		h.Teardown(ctx, client, s.Name)
	}

	return recordErr
}

// Prepare creates the session if it does not exist and forces the recording
// options and window size. It is safe to call repeatedly; only a failure to
// create the session is returned.
func (h *HookRunner) Prepare(ctx context.Context, client *tmux.Client, s Session) error {
	log := h.Logger.WithField("session", s.Name)

	exists, err := client.SessionExists(ctx, s.Name)
	if err != nil {
		log.WithError(err).Debug("has-session failed, assuming no session")
	}

	if !exists {
		err := client.NewSession(ctx, tmux.SessionOptions{
			Name:             s.Name,
			WorkingDirectory: s.Workdir,
			Cols:             s.Cols,
			Rows:             s.Rows,
			Command:          h.Shell,
		})
		if err != nil {
			h.Pretty.Error("Failed to create tmux session", err)
			return errors.SessionCreateFailed(s.Name, err)
		}
		log.Debug("Created tmux session")

		if err := client.SetGlobalOption(ctx, "status", "off"); err != nil {
			log.WithError(err).Debug("Failed to disable status bar")
		}
	}

	for _, opt := range tmux.RecordingOptions {
		if err := client.SetGlobalOption(ctx, opt[0], opt[1]); err != nil {
			log.WithError(err).Debugf("Failed to set %s", opt[0])
		}
	}

	if err := client.ResizeWindow(ctx, tmux.FirstWindow(s.Name), s.Cols, s.Rows); err != nil {
		log.WithError(err).Debug("Failed to resize window")
	}

	return nil
}

// Teardown kills the session and its server. Failures are ignored, the
// server may already be gone.
func (h *HookRunner) Teardown(ctx context.Context, client *tmux.Client, name string) {
	if err := client.KillSession(ctx, name); err != nil {
		h.Logger.WithError(err).Debug("kill-session failed")
	}
	if err := client.KillServer(ctx); err != nil {
		h.Logger.WithError(err).Debug("kill-server failed")
	}
}

func (h *HookRunner) record(client *tmux.Client, s Session) error {
	opts := asciinema.RecordOptions{
		Output:  s.Output,
		Cols:    s.Cols,
		Rows:    s.Rows,
		Command: client.AttachCommand(s.Name),
	}

	cmd, err := h.Builder.BuildLongRunning(h.RecorderBinary, opts.Args()...)
	if err != nil {
		return errors.CommandFailed(h.RecorderBinary, err)
	}

	recorder := cmd.Exec()
	recorder.Stdin = h.Stdin
	recorder.Stdout = h.Stdout
	recorder.Stderr = h.Stderr

	h.Logger.WithField("args", opts.Args()).Debug("Starting recorder")
	runErr := recorder.Run()

	code, ok := process.ExitStatus(runErr, ExitUndetermined)
	if !ok {
		h.Pretty.Error("Failed to run asciinema", runErr)
		return errors.CommandFailed(h.RecorderBinary, runErr)
	}
	if code != 0 {
		return errors.ChildExited(h.RecorderBinary, code)
	}
	return nil
}
