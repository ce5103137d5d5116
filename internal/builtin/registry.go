// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mvdan.cc/sh/v3/interp"
)

// Default holds the builtins installed by the virtual runtime.
var Default = NewRegistry(newGrepCommand())

type (
	// Command is one builtin utility.
	Command interface {
		// Name is the program name the shell resolves, e.g. "grep".
		Name() string
		// Run executes with args[0] set to the program name. Streams and the
		// working directory come from the HandlerContext in ctx.
		Run(ctx context.Context, args []string) error
	}

	// Registry maps program names to builtins. It is safe for concurrent use.
	Registry struct {
		mu       sync.RWMutex
		commands map[string]Command
	}
)

// NewRegistry creates a Registry holding cmds.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds cmd. It panics on an empty or duplicate name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		panic("builtin: cannot register command with empty name")
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("builtin: command %q already registered", name))
	}
	r.commands[name] = cmd
}

// Lookup returns the builtin registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecHandler is interp exec middleware: registered programs run in-process,
// everything else is passed to next.
func (r *Registry) ExecHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) > 0 {
			if cmd, ok := r.Lookup(args[0]); ok {
				return cmd.Run(ctx, args)
			}
		}
		return next(ctx, args)
	}
}
