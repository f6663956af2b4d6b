package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/cli"
	"github.com/EnigmaCurry/shell-scene/config"
	"github.com/EnigmaCurry/shell-scene/engine"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/pkg/deps"
)

// NewRecordCmd creates the record command.
func NewRecordCmd() *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an asciicast via ttyd",
		Long: `Serve a tmux session in the browser with ttyd and record it with asciinema.

ttyd is started on the first free port at or above --port. Each browser
connection attaches to the same tmux session, which survives reconnects unless
--kill-on-detach is set. Press Ctrl-C to stop the server.

Examples:
  # record to ~/casts/cast-<timestamp>.cast
  shell-scene record

  # a 100x30 demo in a project directory, cleaned up afterwards
  shell-scene record --session demo --cols 100 --rows 30 --workdir ~/src/app --kill-on-detach`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, true)
			if err != nil {
				return err
			}
			logger := cli.GetLogger(cmd)

			checker := deps.NewChecker(nil)
			if err := checker.Require(deps.Required...); err != nil {
				return err
			}
			checker.WarnOptionals(logger, cfg.Record.BrowserCommand())

			exe, err := os.Executable()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to locate the shell-scene executable")
			}

			orchestrator := engine.NewOrchestrator(exe)
			orchestrator.Logger = logger
			orchestrator.BrowserCommand = cfg.Record.BrowserCommand()

			session := cfg.ToSession()
			session.LogLevel = hookLogLevel(cmd)
			return orchestrator.Run(cmd.Context(), session)
		},
	}

	flags = config.AddRecordFlags(cmd.Flags(), false)
	return cmd
}

// hookLogLevel returns the level given on the command line, for hook mode to
// log at. Other sources reach the hook on their own.
func hookLogLevel(cmd *cobra.Command) string {
	opts := cli.GetOptions(cmd)
	if opts.Verbose {
		return "debug"
	}
	return opts.LogLevel
}
