package errors

import (
	"fmt"
	"os/exec"
	"strings"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SceneError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SceneError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidInput creates an error for a rejected option value.
func InvalidInput(field string, reason string) *SceneError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithDetail("field", field)
}

// CommandsNotFound reports required programs missing from PATH.
func CommandsNotFound(names ...string) *SceneError {
	return New(ErrCodeCommandNotFound,
		fmt.Sprintf("missing required command(s): %s", strings.Join(names, ", "))).
		WithDetail("commands", names)
}

// WorkdirInvalid creates an error for a working directory that cannot be used
func WorkdirInvalid(path string, reason string) *SceneError {
	return New(ErrCodeWorkdirInvalid, fmt.Sprintf("working directory %s: %s", reason, path)).
		WithDetail("path", path)
}

// DirNotWritable creates an error for an output directory that cannot be created or written
func DirNotWritable(path string, err error) *SceneError {
	return Wrap(err, ErrCodeDirNotWritable, fmt.Sprintf("directory is not writable: %s", path)).
		WithDetail("path", path)
}

// PortsExhausted creates an error for a port scan that found nothing bindable
func PortsExhausted(start int) *SceneError {
	return New(ErrCodePortsExhausted, "no free TCP port found in range 1..=65535").
		WithDetail("start", start)
}

// SpawnFailed creates an error for a child process that could not be started
func SpawnFailed(name string, err error) *SceneError {
	return Wrap(err, ErrCodeSpawnFailed, fmt.Sprintf("failed to spawn %s", name)).
		WithDetail("command", name)
}

// WaitFailed creates an error for a child process that could not be waited on
func WaitFailed(name string, err error) *SceneError {
	return Wrap(err, ErrCodeWaitFailed, fmt.Sprintf("failed waiting for %s", name)).
		WithDetail("command", name)
}

// ChildExited reports a child that finished with a non-zero status.
// The status is carried verbatim as the process exit code.
func ChildExited(name string, code int) *SceneError {
	return New(ErrCodeChildExited, fmt.Sprintf("%s exited with status %d", name, code)).
		WithDetail("command", name).
		WithDetail("exitCode", code)
}

// SessionCreateFailed creates an error for a tmux session that could not be created
func SessionCreateFailed(session string, err error) *SceneError {
	return Wrap(err, ErrCodeSessionCreate, fmt.Sprintf("failed to create tmux session '%s'", session)).
		WithDetail("session", session)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *SceneError {
	sceneErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		sceneErr = sceneErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return sceneErr
}
