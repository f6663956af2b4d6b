package command

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 30 * time.Second

	// maxSessionNameLength keeps socket paths under the unix socket limit.
	maxSessionNameLength = 64

	maxSocketNameLength = 80
)

var validSessionName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"sessionName": validateSessionName,
		"socketName":  validateSocketName,
	}
}

// validateSessionName ensures tmux session names are safe. The name is also
// embedded in the recorder's attach command, which is run by a shell.
func validateSessionName(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}

	if !validSessionName.MatchString(name) {
		return fmt.Errorf("invalid session name: %s (must start with a letter, digit or underscore and contain only letters, digits, '_', '.' and '-')", name)
	}

	if len(name) > maxSessionNameLength {
		return fmt.Errorf("session name too long: %s (max %d characters)", name, maxSessionNameLength)
	}

	return nil
}

// validateSocketName ensures tmux -L socket names are safe.
func validateSocketName(name string) error {
	if name == "" {
		return fmt.Errorf("socket name cannot be empty")
	}

	if !validSessionName.MatchString(name) || len(name) > maxSocketNameLength {
		return fmt.Errorf("invalid socket name: %s", name)
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	cancel   context.CancelFunc
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation. The command is bounded by
// the builder's default timeout; call Cancel once it has finished.
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	// Validate command name
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	// Apply timeout to context
	timeoutCtx, cancel := context.WithTimeout(ctx, sb.defaultTimeout)

	return &Command{
		ctx:      timeoutCtx,
		cancel:   cancel,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// BuildLongRunning creates a command without a deadline, for servers and
// interactive programs that run until the user ends them.
func (sb *SafeBuilder) BuildLongRunning(name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	return &Command{
		name:     name,
		args:     args,
		executor: sb.executor,
	}, nil
}

// Cancel releases the command's timeout context, if any.
func (c *Command) Cancel() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Name returns the program name.
func (c *Command) Name() string {
	return c.name
}

// Args returns the program arguments.
func (c *Command) Args() []string {
	return c.args
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd
func (c *Command) Exec() *exec.Cmd {
	if c.ctx == nil {
		return c.executor.Command(c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	}
	return c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
}
