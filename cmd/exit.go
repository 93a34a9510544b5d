package cmd

import (
	"errors"
	"fmt"
)

// Exit codes for clienv commands.
const (
	ExitSuccess = 0 // Successful execution, including "not found" on get
	ExitFailure = 1 // Any failed operation
)

// ExitError carries the exit code for a failed command.
type ExitError struct {
	Code int
	Err  error

	// Reported is true when the message was already written to stderr.
	Reported bool
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// WasReported reports whether err's message has already been shown.
func WasReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}
