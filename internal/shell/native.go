// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// defaultShell is used when no shell is configured and none is found on PATH.
const defaultShell = "/bin/sh"

// Native executes commands with the host POSIX shell.
type Native struct {
	// Shell overrides the detected shell.
	Shell string
}

// NewNative creates a native runtime. An empty shellPath means auto-detect.
func NewNative(shellPath string) *Native {
	return &Native{Shell: shellPath}
}

// Name returns the runtime name.
func (r *Native) Name() string {
	return string(ModeNative)
}

// Run executes req.Command as `<shell> -c <command>`.
func (r *Native) Run(ctx context.Context, req Request) (ExitCode, error) {
	if req.Command == "" {
		return FailureExitCode, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, r.shell(), "-c", req.Command)
	cmd.Dir = req.Dir

	// exec.Cmd connects nil streams to the null device.
	cmd.Stdin = req.Stdin
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitCode(exitErr.ExitCode()), nil
		}
		return FailureExitCode, fmt.Errorf("failed to execute command: %w", err)
	}

	return 0, nil
}

// shell determines which shell binary to use. Templates are POSIX sh, so
// $SHELL is deliberately not consulted.
func (r *Native) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh
	}
	return defaultShell
}
