package errors

// Process exit codes. Child and recorder statuses are passed through
// unchanged, so the fixed codes sit outside the range tools usually use.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitSessionCreate  = 2
	ExitPortsExhausted = 69
	ExitWaitFailed     = 70
	ExitSpawnFailed    = 71
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	sceneErr, ok := As(err)
	if !ok {
		return ExitFailure
	}

	switch sceneErr.Code {
	case ErrCodeChildExited:
		if code, ok := sceneErr.Details["exitCode"].(int); ok && code > 0 {
			return code
		}
		return ExitFailure
	case ErrCodeSessionCreate:
		return ExitSessionCreate
	case ErrCodePortsExhausted:
		return ExitPortsExhausted
	case ErrCodeWaitFailed:
		return ExitWaitFailed
	case ErrCodeSpawnFailed:
		return ExitSpawnFailed
	default:
		return ExitFailure
	}
}
