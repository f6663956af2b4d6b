package process

import (
	"os"
	"os/exec"
	"syscall"
)

// IsProcessAlive checks if a process with the given PID is still running.
// It uses a signal-sending method that is cross-platform for Unix-like systems (macOS, Linux).
func IsProcessAlive(pid int) bool {
	// PID 0 or less is invalid.
	if pid <= 0 {
		return false
	}

	// Find the process. This doesn't fail on Unix if the process doesn't exist.
	process, err := os.FindProcess(pid)
	if err != nil {
		return false // Should not happen on Unix-like systems.
	}

	// Signal 0 checks for existence without delivering anything.
	// EPERM means the process exists but belongs to someone else.
	err = process.Signal(syscall.Signal(0))

	return err == nil || os.IsPermission(err)
}

// Terminate sends SIGTERM to pid.
func Terminate(pid int) error {
	if pid <= 0 {
		return syscall.ESRCH
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Signal(syscall.SIGTERM)
}

// ExitStatus extracts a process exit code from the result of exec.Cmd.Wait
// or Run. ok is false when err is not an exit status (the wait itself failed).
// A process killed by a signal has no exit code and reports fallback.
func ExitStatus(err error, fallback int) (code int, ok bool) {
	if err == nil {
		return 0, true
	}
	exitErr, isExit := err.(*exec.ExitError)
	if !isExit {
		return 0, false
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code, true
	}
	return fallback, true
}
