// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for batch failures
var (
	ErrMissingSiteID   = errors.New("missing site id")
	ErrMissingDeviceID = errors.New("missing device id")
	ErrUserDeclined    = errors.New("cancelled by user")
)

// Exit codes shared by all commands. Kept compatible with the historical
// shell scripts these tools replaced.
const (
	ExitOK    = 0 // normal run, help, user-declined, nothing to do
	ExitError = 1 // CSV or report read failure
	ExitSetup = 2 // credentials, login, or option problems
)

// ExitCodeError carries the process exit code a fatal error maps to.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// Exitf builds an ExitCodeError from a format string.
func Exitf(code int, format string, args ...interface{}) *ExitCodeError {
	return &ExitCodeError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode extracts the exit code from err: 0 for nil, the carried code for
// an ExitCodeError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec *ExitCodeError
	if errors.As(err, &ec) {
		return ec.Code
	}
	return ExitError
}

// RowError records a failure tied to one line of an input file. Line is
// 1-based and counts every line read, including headers and comments.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// RowErrors accumulates per-row failures so a batch can report partial
// success distinct from total failure.
type RowErrors []*RowError

func (e RowErrors) Error() string {
	switch len(e) {
	case 0:
		return "no row errors"
	case 1:
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more rows)", e[0].Error(), len(e)-1)
}
