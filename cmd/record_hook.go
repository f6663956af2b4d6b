package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/cli"
	"github.com/EnigmaCurry/shell-scene/config"
	"github.com/EnigmaCurry/shell-scene/engine"
)

// NewRecordHookCmd creates the hidden command ttyd runs for each
// connection. It receives its parameters as flags and environment.
func NewRecordHookCmd() *cobra.Command {
	var (
		flags *config.Flags
		child bool
	)

	cmd := &cobra.Command{
		Use:    engine.HookCommand,
		Short:  "INTERNAL: tmux/asciinema worker invoked inside ttyd",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, true)
			if err != nil {
				return err
			}
			logger := cli.GetLogger(cmd)
			if !child {
				logger.Debug("record-hook started outside ttyd")
			}

			hook := engine.NewHookRunner()
			hook.Logger = logger
			hook.Shell = cfg.Record.Shell

			return hook.Run(cmd.Context(), cfg.Record.ToSession())
		},
	}

	flags = config.AddRecordFlags(cmd.Flags(), true)
	cmd.Flags().BoolVar(&child, "child", false, "set when started by ttyd")

	return cmd
}
