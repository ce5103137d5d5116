// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dotcargo/dotcargo/internal/builtin"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Virtual executes commands with the embedded mvdan/sh interpreter. Programs
// in builtin.Default (grep) run in-process; everything else (cargo, curl) is
// resolved from PATH.
type Virtual struct{}

// NewVirtual creates a virtual runtime.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Name returns the runtime name.
func (r *Virtual) Name() string {
	return string(ModeVirtual)
}

// Run parses req.Command and runs it in a fresh interpreter.
func (r *Virtual) Run(ctx context.Context, req Request) (ExitCode, error) {
	if req.Command == "" {
		return FailureExitCode, ErrEmptyCommand
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(req.Command), "")
	if err != nil {
		return FailureExitCode, fmt.Errorf("failed to parse command: %w", err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(req.Stdin, req.Stdout, req.Stderr),
		interp.ExecHandlers(builtin.Default.ExecHandler),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return FailureExitCode, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return ExitCode(exitStatus), nil
		}
		return FailureExitCode, fmt.Errorf("command execution failed: %w", err)
	}

	return 0, nil
}
