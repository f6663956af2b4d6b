package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EnigmaCurry/shell-scene/errors"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

func (h *ErrorHandler) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.Out, format, args...)
}

// Handle prints a message for err based on its code and returns it. A
// child that exited non-zero has already reported on its own and prints
// nothing.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	sceneErr, _ := errors.As(err)
	prefix := errorStyle.Render("ERROR:")

	switch errors.GetCode(err) {
	case errors.ErrCodeChildExited:
		return err

	case errors.ErrCodeConfigNotFound:
		h.printf("%s Config file not found: %v\n", prefix, sceneErr.Details["path"])

	case errors.ErrCodeCommandNotFound:
		names, _ := sceneErr.Details["commands"].([]string)
		h.printf("%s Missing required command(s): %s\n", prefix, strings.Join(names, ", "))
		h.printf("Install ttyd, tmux and asciinema and make sure they are on your PATH.\n")

	case errors.ErrCodeWorkdirInvalid:
		h.printf("%s %s\n", prefix, sceneErr.Message)

	case errors.ErrCodeDirNotWritable:
		h.printf("%s Output directory %v is not writable\n", prefix, sceneErr.Details["path"])

	case errors.ErrCodePortsExhausted:
		h.printf("%s No free TCP port found in range 1..=65535\n", prefix)

	case errors.ErrCodeSpawnFailed:
		h.printf("%s Failed to spawn %v: %v\n", prefix, sceneErr.Details["command"], sceneErr.Cause)

	case errors.ErrCodeWaitFailed:
		h.printf("%s Failed waiting for %v: %v\n", prefix, sceneErr.Details["command"], sceneErr.Cause)

	default:
		switch {
		case sceneErr == nil:
			h.printf("%s %v\n", prefix, err)
		case sceneErr.Cause != nil:
			h.printf("%s %s: %v\n", prefix, sceneErr.Message, sceneErr.Cause)
		default:
			h.printf("%s %s\n", prefix, sceneErr.Message)
		}
	}

	// If verbose mode, show full error details
	if h.Verbose && sceneErr != nil {
		h.printf("\nError details:\n%s\n", sceneErr.ToJSON())
	}
	return err
}
