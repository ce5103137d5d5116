// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/dotcargo/dotcargo/internal/shell"
)

type (
	// FakeRunner is a shell.Runner that records requests and answers them
	// from a script instead of running anything.
	FakeRunner struct {
		// Exit maps an exact command line to the exit code it returns.
		Exit map[string]shell.ExitCode
		// Err maps an exact command line to a start failure.
		Err map[string]error
		// Default is returned for commands not present in Exit.
		Default shell.ExitCode

		mu       sync.Mutex
		requests []shell.Request
	}
)

// NewFakeRunner creates a FakeRunner whose unscripted commands exit with def.
func NewFakeRunner(def shell.ExitCode) *FakeRunner {
	return &FakeRunner{
		Exit:    make(map[string]shell.ExitCode),
		Err:     make(map[string]error),
		Default: def,
	}
}

// Name returns the runtime name.
func (r *FakeRunner) Name() string { return "fake" }

// Run records req and returns the scripted result.
func (r *FakeRunner) Run(_ context.Context, req shell.Request) (shell.ExitCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	if err, ok := r.Err[req.Command]; ok {
		return shell.FailureExitCode, err
	}
	if code, ok := r.Exit[req.Command]; ok {
		return code, nil
	}
	return r.Default, nil
}

// Requests returns every recorded request in order.
func (r *FakeRunner) Requests() []shell.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shell.Request(nil), r.requests...)
}

// Commands returns every recorded command line in order.
func (r *FakeRunner) Commands() []string {
	reqs := r.Requests()
	cmds := make([]string, len(reqs))
	for i, req := range reqs {
		cmds[i] = req.Command
	}
	return cmds
}

// Ran reports whether any recorded command contains substr.
func (r *FakeRunner) Ran(substr string) bool {
	for _, cmd := range r.Commands() {
		if strings.Contains(cmd, substr) {
			return true
		}
	}
	return false
}
