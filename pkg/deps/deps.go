// Package deps checks that the external programs shell-scene drives are
// installed before any of them is started.
package deps

import (
	"github.com/sirupsen/logrus"

	"github.com/EnigmaCurry/shell-scene/command"
	"github.com/EnigmaCurry/shell-scene/errors"
)

// Required programs for recording.
var Required = []string{"ttyd", "tmux", "asciinema"}

// Checker resolves programs through an Executor.
type Checker struct {
	exec command.Executor
}

// NewChecker creates a Checker. A nil executor resolves against the real PATH.
func NewChecker(exec command.Executor) *Checker {
	if exec == nil {
		exec = &command.RealExecutor{}
	}
	return &Checker{exec: exec}
}

// Have reports whether name resolves on PATH.
func (c *Checker) Have(name string) bool {
	_, err := c.exec.LookPath(name)
	return err == nil
}

// Require returns a COMMAND_NOT_FOUND error listing every missing program.
func (c *Checker) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !c.Have(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.CommandsNotFound(missing...)
	}
	return nil
}

// WarnOptionals logs a warning for each convenience program that is absent.
func (c *Checker) WarnOptionals(logger *logrus.Entry, browser string) {
	if browser != "" && !c.Have(browser) {
		logger.Warnf("'%s' not found; not opening a browser automatically.", browser)
	}
}
