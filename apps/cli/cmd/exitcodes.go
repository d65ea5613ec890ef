package cmd

import (
	"errors"
)

// Exit codes for the restharness CLI
const (
	// ExitSuccess indicates a 2xx response or a clean shutdown
	ExitSuccess = 0

	// ExitFailure indicates the service answered with a non-2xx status
	ExitFailure = 1

	// ExitConfigError indicates a configuration or fixture error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
	// reported is set once a formatter has shown err to the user
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// reportedError is withExitCode for errors a formatter already printed.
func reportedError(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}

func isReported(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.reported
}

// ExitCode maps an Execute error to a process exit code. Errors without a
// code come from cobra's argument and flag parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitUsageError
}
