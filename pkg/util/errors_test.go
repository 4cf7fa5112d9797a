package util

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitError},
		{"setup error", Exitf(ExitSetup, "missing credentials"), ExitSetup},
		{"wrapped setup error", fmt.Errorf("login: %w", Exitf(ExitSetup, "no token")), ExitSetup},
		{"explicit ok", Exitf(ExitOK, "nothing to do"), ExitOK},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestExitCodeError_Unwrap(t *testing.T) {
	err := &ExitCodeError{Code: ExitSetup, Err: ErrUserDeclined}
	if !errors.Is(err, ErrUserDeclined) {
		t.Error("expected errors.Is to see through ExitCodeError")
	}
}

func TestRowError(t *testing.T) {
	err := &RowError{Line: 3, Err: errors.New("not enough columns")}
	if got, want := err.Error(), "line 3: not enough columns"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRowErrors_Error(t *testing.T) {
	var errs RowErrors
	errs = append(errs, &RowError{Line: 2, Err: errors.New("bad email")})
	if got := errs.Error(); got != "line 2: bad email" {
		t.Errorf("single: got %q", got)
	}
	errs = append(errs, &RowError{Line: 5, Err: errors.New("short row")})
	if got := errs.Error(); got != "line 2: bad email (and 1 more rows)" {
		t.Errorf("multi: got %q", got)
	}
}
