// Package engine sequences the external programs that make up a recording:
// the orchestrator runs ttyd on a free port, and ttyd re-invokes this
// program in hook mode, which prepares tmux and runs asciinema.
package engine

import (
	"strconv"

	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/pkg/ttyd"
)

// HookCommand is the hidden subcommand ttyd runs for each connection.
const HookCommand = "record-hook"

// ExitUndetermined is reported for a child whose exit code is unknown,
// such as one killed by a signal.
const ExitUndetermined = errors.ExitFailure

// Environment variables carrying a Session into hook mode.
const (
	EnvSession      = "SESSION"
	EnvCols         = "TMUX_COLS"
	EnvRows         = "TMUX_ROWS"
	EnvPort         = "TT_PORT"
	EnvFontSize     = "FONT_SIZE"
	EnvOutput       = "ASCII_OUT"
	EnvWorkdir      = "WORKING_DIRECTORY"
	EnvKillOnDetach = "TMUX_KILL_ON_DETACH"
)

// Session describes one recording. It is built once from configuration
// and never modified.
type Session struct {
	Name         string
	Cols         int
	Rows         int
	Port         uint16
	FontSize     int
	Output       string
	Workdir      string
	KillOnDetach bool

	// ConfigFile and LogLevel are handed to hook mode unchanged so it
	// loads the same file and logs at the same level. Empty means unset.
	ConfigFile string
	LogLevel   string
}

// HookArgs returns the argv that re-invokes exe in hook mode.
func (s Session) HookArgs(exe string) []string {
	args := []string{
		exe,
		HookCommand,
		"--child",
		"--session", s.Name,
		"--cols", strconv.Itoa(s.Cols),
		"--rows", strconv.Itoa(s.Rows),
		"--out", s.Output,
		"--workdir", s.Workdir,
	}
	if s.KillOnDetach {
		args = append(args, "--kill-on-detach")
	}
	if s.ConfigFile != "" {
		args = append(args, "--config", s.ConfigFile)
	}
	if s.LogLevel != "" {
		args = append(args, "--log", s.LogLevel)
	}
	return args
}

// HookEnv returns the same parameters as HookArgs, as environment
// assignments for the recorder side of hook mode.
func (s Session) HookEnv() []ttyd.EnvVar {
	return []ttyd.EnvVar{
		{Key: EnvSession, Value: s.Name},
		{Key: EnvCols, Value: strconv.Itoa(s.Cols)},
		{Key: EnvRows, Value: strconv.Itoa(s.Rows)},
		{Key: EnvOutput, Value: s.Output},
		{Key: EnvWorkdir, Value: s.Workdir},
		{Key: EnvKillOnDetach, Value: strconv.FormatBool(s.KillOnDetach)},
	}
}
