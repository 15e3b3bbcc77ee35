package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/tinychange/internal/errors"
)

// Exit codes for the tinychange CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the command failed, e.g. a malformed fragment
	// or a changelog that cannot be merged into
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfiguration indicates a missing or invalid configuration file
	ExitConfiguration = 4
)

// ExitError carries the process exit code of a failed command.
// The command's error has already been reported when it is returned.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError creates an ExitError for code wrapping err.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err.
// nil maps to ExitSuccess and errors without an ExitError to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// exitCodeFor maps an error category to its exit code.
func exitCodeFor(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
