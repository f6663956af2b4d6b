package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/logging"
)

// CommandOptions holds the global options shared by every command
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	LogLevel   string
	JSONOutput bool
}

// NewStandardCommand creates a root command with the standard global flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("log", "", "Log level: trace, debug, info, warn, or error")
	cmd.PersistentFlags().Bool("json", false, "Output logs and data in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (YAML or TOML)")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logLevel, _ := cmd.Flags().GetString("log")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		LogLevel:   logLevel,
		JSONOutput: jsonOutput,
	}
}

// ConfigureLogging applies the global flags and the config file's logging
// section to every logger.
func ConfigureLogging(cmd *cobra.Command, cfg logging.Config) error {
	opts := GetOptions(cmd)
	return logging.Configure(logging.Options{
		Level:   opts.LogLevel,
		Verbose: opts.Verbose,
		JSON:    opts.JSONOutput,
		Config:  cfg,
	})
}

// GetLogger returns the logger for a command, named after it.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	return logging.NewLogger(cmd.Name())
}
