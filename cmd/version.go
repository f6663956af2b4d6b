package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/cli"
	"github.com/EnigmaCurry/shell-scene/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand(BinaryName, version.GetInfo())
}
