package main

import (
	"os"

	"github.com/EnigmaCurry/shell-scene/cli"
	"github.com/EnigmaCurry/shell-scene/cmd"
	"github.com/EnigmaCurry/shell-scene/errors"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(errors.ExitCode(err))
	}
}
