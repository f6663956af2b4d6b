package engine

import (
	"context"
	"io"
	"net"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/EnigmaCurry/shell-scene/command"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/logging"
	"github.com/EnigmaCurry/shell-scene/pkg/fsutil"
	"github.com/EnigmaCurry/shell-scene/pkg/netutil"
	"github.com/EnigmaCurry/shell-scene/pkg/process"
	"github.com/EnigmaCurry/shell-scene/pkg/ttyd"
)

// DefaultBrowser opens the served URL when it is found on PATH.
const DefaultBrowser = "xdg-open"

// StatusPrefix tags the user-facing status lines of both modes.
const StatusPrefix = "ttyd"

// Orchestrator runs ttyd for a Session and waits for it to exit.
type Orchestrator struct {
	Builder   *command.SafeBuilder
	Logger    *logrus.Entry
	Pretty    *logging.PrettyLogger
	Scanner   netutil.PortScanner
	Readiness netutil.ReadinessProbe

	// ServerBinary is the ttyd program.
	ServerBinary string
	// BrowserCommand is started with the URL once ttyd is up. Empty
	// disables it.
	BrowserCommand string
	// Executable is the program ttyd re-invokes in hook mode.
	Executable string

	Stdout io.Writer
	Stderr io.Writer
}

// NewOrchestrator returns an Orchestrator with the default programs that
// re-invokes exe for each connection.
func NewOrchestrator(exe string) *Orchestrator {
	return &Orchestrator{
		Builder:        command.NewSafeBuilder(),
		Logger:         logging.NewLogger("record"),
		Pretty:         logging.NewPrettyLogger(StatusPrefix),
		ServerBinary:   ttyd.DefaultBinary,
		BrowserCommand: DefaultBrowser,
		Executable:     exe,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// Run checks the filesystem, starts ttyd on the first free port at or above
// s.Port and blocks until ttyd exits. Interrupts received while ttyd runs
// are forwarded to it as SIGTERM. A non-zero exit of ttyd is returned as a
// CHILD_EXITED error carrying its code.
func (o *Orchestrator) Run(ctx context.Context, s Session) error {
	if err := fsutil.ValidateWorkdir(s.Workdir); err != nil {
		return err
	}
	if err := fsutil.EnsureWritableDir(fsutil.OutputDir(s.Output)); err != nil {
		return err
	}

	port, err := o.Scanner.FindFreePort(s.Port)
	if err != nil {
		return err
	}
	if port != s.Port {
		o.Logger.WithField("requested", s.Port).Debugf("Using port %d", port)
	}

	opts := ttyd.Options{
		Port:     port,
		FontSize: s.FontSize,
		Title:    s.Name,
		Env:      s.HookEnv(),
		Command:  s.HookArgs(o.Executable),
	}
	cmd, err := o.Builder.BuildLongRunning(o.ServerBinary, opts.Args()...)
	if err != nil {
		return errors.SpawnFailed(o.ServerBinary, err)
	}

	server := cmd.Exec()
	server.Stdin = nil
	server.Stdout = o.Stdout
	server.Stderr = o.Stderr

	o.Logger.WithField("args", opts.Args()).Debug("Starting ttyd")
	if err := server.Start(); err != nil {
		return errors.SpawnFailed(o.ServerBinary, err)
	}
	pid := server.Process.Pid

	stop := process.ForwardInterrupt(pid, func(sig os.Signal, err error) {
		if err != nil {
			if !process.IsProcessAlive(pid) {
				o.Logger.Debugf("Not forwarding %v, ttyd already exited", sig)
				return
			}
			o.Logger.WithError(err).Debugf("Failed to forward %v to ttyd", sig)
			return
		}
		o.Logger.Debugf("Forwarded %v to ttyd (pid %d)", sig, pid)
	})
	defer stop()

	host := o.host()
	url := ttyd.URL(host, port)
	o.Pretty.Waiting(url)
	if !o.Readiness.Wait(ctx, net.JoinHostPort(host, strconv.Itoa(int(port)))) {
		o.Logger.Warnf("ttyd is not accepting connections on %s yet", url)
	}

	o.openBrowser(url)
	o.Pretty.Serving(url, pid)

	return o.wait(server)
}

func (o *Orchestrator) host() string {
	if o.Scanner.Host != "" {
		return o.Scanner.Host
	}
	return netutil.DefaultHost
}

// openBrowser starts the browser without waiting for it. The process is
// reaped in the background.
func (o *Orchestrator) openBrowser(url string) {
	if o.BrowserCommand == "" {
		return
	}
	if _, err := o.Builder.Executor().LookPath(o.BrowserCommand); err != nil {
		return
	}

	cmd, err := o.Builder.BuildLongRunning(o.BrowserCommand, url)
	if err != nil {
		o.Logger.WithError(err).Warn("Failed to open browser")
		return
	}
	browser := cmd.Exec()
	if err := browser.Start(); err != nil {
		o.Logger.WithError(err).Warn("Failed to open browser")
		return
	}
	go func() { _ = browser.Wait() }()
}

func (o *Orchestrator) wait(server *exec.Cmd) error {
	err := server.Wait()
	code, ok := process.ExitStatus(err, ExitUndetermined)
	if !ok {
		return errors.WaitFailed(o.ServerBinary, err)
	}
	if code != 0 {
		return errors.ChildExited(o.ServerBinary, code)
	}
	return nil
}
