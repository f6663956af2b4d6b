package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/EnigmaCurry/shell-scene/errors"
)

const completionsUsage = `To enable tab completion, add one of the following to your shell init file:

### Bash (put this in ~/.bashrc):
source <(shell-scene completions bash)

### Fish (put this in ~/.config/fish/config.fish):
shell-scene completions fish | source

### Zsh (put this in ~/.zshrc):
autoload -U compinit; compinit; source <(shell-scene completions zsh)
`

// NewCompletionsCmd creates the completions command.
func NewCompletionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completions [bash|zsh|fish]",
		Short:     "Generate tab completion script for your shell",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.ErrOrStderr(), completionsUsage)
				return errors.InvalidInput("shell", "no shell specified")
			}
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	default:
		return errors.InvalidInput("shell", fmt.Sprintf("unsupported shell %q", shell))
	}
}
