package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/cli"
	"github.com/EnigmaCurry/shell-scene/config"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/logging"
	"github.com/EnigmaCurry/shell-scene/version"
)

// BinaryName is the name of the shell-scene executable.
const BinaryName = "shell-scene"

// NewRootCmd builds the shell-scene command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		BinaryName,
		"Record terminal sessions in the browser with ttyd, tmux and asciinema",
	)
	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(NewRecordCmd())
	root.AddCommand(NewRecordHookCmd())
	root.AddCommand(NewCompletionsCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewVersionCmd())

	// Completion scripts come from the completions command.
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// loadConfig configures logging from the global flags, loads the layered
// configuration, then reapplies logging with the file's logging section.
func loadConfig(cmd *cobra.Command, flags *config.Flags, finalize bool) (*config.Config, error) {
	if err := cli.ConfigureLogging(cmd, logging.Config{}); err != nil {
		return nil, errors.InvalidInput("log", err.Error())
	}

	cfg, err := config.Load(config.Options{
		Path:         cli.GetOptions(cmd).ConfigFile,
		Flags:        flags,
		SkipFinalize: !finalize,
		Logger:       cli.GetLogger(cmd),
	})
	if err != nil {
		return nil, err
	}

	if err := cli.ConfigureLogging(cmd, cfg.Logging); err != nil {
		cli.GetLogger(cmd).WithError(err).Warn("Ignoring invalid logging configuration")
	}
	return cfg, nil
}
