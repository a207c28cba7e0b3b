package cli

import (
	stderrors "errors"
	"fmt"
)

// Exit codes shared by the smol binaries.
const (
	ExitSuccess  = 0
	ExitFailure  = 1 // bad input: syntax errors, unreadable files, runtime I/O
	ExitInternal = 2 // compiler bug
)

// ExitError carries the process exit code out of a command.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitInternal)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
