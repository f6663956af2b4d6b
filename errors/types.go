package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"

	// Environment errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeWorkdirInvalid  ErrorCode = "WORKDIR_INVALID"
	ErrCodeDirNotWritable  ErrorCode = "DIR_NOT_WRITABLE"

	// Network errors
	ErrCodePortsExhausted ErrorCode = "PORTS_EXHAUSTED"

	// Process errors
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrCodeSpawnFailed   ErrorCode = "SPAWN_FAILED"
	ErrCodeWaitFailed    ErrorCode = "WAIT_FAILED"
	ErrCodeChildExited   ErrorCode = "CHILD_EXITED"

	// Session errors
	ErrCodeSessionCreate ErrorCode = "SESSION_CREATE_FAILED"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// SceneError represents a structured error with context
type SceneError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SceneError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SceneError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SceneError) WithDetail(key string, value interface{}) *SceneError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SceneError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SceneError
func New(code ErrorCode, message string) *SceneError {
	return &SceneError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SceneError
func Wrap(err error, code ErrorCode, message string) *SceneError {
	return &SceneError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the first SceneError in err's chain.
func As(err error) (*SceneError, bool) {
	for err != nil {
		if sceneErr, ok := err.(*SceneError); ok {
			return sceneErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// Is checks if an error is a specific SceneError code
func Is(err error, code ErrorCode) bool {
	sceneErr, ok := As(err)
	if !ok {
		return false
	}
	return sceneErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	sceneErr, ok := As(err)
	if !ok {
		return ""
	}
	return sceneErr.Code
}
