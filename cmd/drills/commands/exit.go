package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrled/suns/drills/internal/service/runner"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// An error type that includes an exit code
type ExitError struct {
	Code int
	Err  error
}

// Implement the error interface
func (e *ExitError) Error() string {
	return e.Err.Error()
}
func (e *ExitError) Unwrap() error {
	return e.Err
}

func ExitWithCode(code int, err error) *ExitError {
	if err == nil {
		return nil
	}
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

// UsageError marks a problem with how the command was invoked
type UsageError struct{ error }

func (e UsageError) Unwrap() error {
	return e.error
}

// ExitCode picks the process exit status for an error returned by Execute
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var usageErr UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	return ExitFailure
}

// classify maps a run error onto the exit code contract: bad input is a
// usage error, anything else is a runtime failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, runner.ErrInvalidArgs) || errors.Is(err, runner.ErrUnknownKind) {
		return UsageError{err}
	}
	return ExitWithCode(ExitFailure, err)
}

// usageArgs wraps a cobra argument validator so its failures exit with ExitUsage
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return UsageError{err}
		}
		return nil
	}
}
