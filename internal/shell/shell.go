// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// ModeNative runs commands with the host shell.
	ModeNative Mode = "native"
	// ModeVirtual runs commands in the embedded mvdan/sh interpreter.
	ModeVirtual Mode = "virtual"

	// FailureExitCode is reported when a command could not be started at all.
	FailureExitCode ExitCode = 1
)

var (
	// ErrInvalidMode is returned when a Mode value is not recognized.
	ErrInvalidMode = errors.New("invalid shell mode")
	// ErrEmptyCommand is returned when a Request carries no command text.
	ErrEmptyCommand = errors.New("empty command")
)

type (
	// Mode selects the runtime used to execute command strings.
	Mode string

	// InvalidModeError is returned when a Mode value is not recognized.
	// It wraps ErrInvalidMode for errors.Is() compatibility.
	InvalidModeError struct {
		Value Mode
	}

	// Request describes a single command invocation.
	Request struct {
		// Command is the shell command line, passed verbatim to the shell.
		Command string
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Stdin is read by the command. Nil means the null device.
		Stdin io.Reader
		// Stdout receives standard output. Nil means the null device.
		Stdout io.Writer
		// Stderr receives standard error. Nil means the null device.
		Stderr io.Writer
	}

	// Runner executes command strings through a shell.
	Runner interface {
		// Name returns the runtime name.
		Name() string
		// Run executes the request and blocks until the command exits.
		// A non-zero exit is reported through the ExitCode, not the error;
		// the error is reserved for failures to start or interpret the command.
		Run(ctx context.Context, req Request) (ExitCode, error)
	}
)

// Error implements the error interface for InvalidModeError.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid shell mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// IsValid returns whether the Mode is one of the defined modes,
// and a list of validation errors if it is not.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeNative, ModeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidModeError{Value: m}}
	}
}

// New creates the Runner for the given mode. shellPath only applies to the
// native runtime; empty means auto-detect.
func New(mode Mode, shellPath string) (Runner, error) {
	switch mode {
	case ModeNative, "":
		return NewNative(shellPath), nil
	case ModeVirtual:
		return NewVirtual(), nil
	default:
		return nil, &InvalidModeError{Value: mode}
	}
}

// Validate reports whether command parses as a POSIX shell program.
func Validate(command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(command), ""); err != nil {
		return fmt.Errorf("command syntax error: %w", err)
	}
	return nil
}
