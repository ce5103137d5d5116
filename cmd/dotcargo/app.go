// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/shell"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and reaches configuration and shell runtimes through it.
	App struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer

		// watchDebounce is the quiet period Watch waits for; zero means the
		// watcher default.
		watchDebounce time.Duration
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RunnerFactory builds the shell runtime commands execute in.
	RunnerFactory func(mode shell.Mode, shellPath string) (shell.Runner, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewRunner == nil {
		deps.NewRunner = shell.New
	}

	return &App{
		Config:    deps.Config,
		NewRunner: deps.NewRunner,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}
