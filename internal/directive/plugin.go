// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"context"
	"io"
	"os"

	"github.com/dotcargo/dotcargo/internal/shell"

	"github.com/charmbracelet/log"
)

type (
	// Host is the directive host: it owns logging, the base directory
	// commands run in, and caller-supplied per-directive defaults.
	Host interface {
		// BaseDirectory is the working directory for every command.
		BaseDirectory() string
		// Defaults returns the caller-supplied overrides for a directive.
		Defaults(name Name) Overrides
		// Logger returns the host logger.
		Logger() *log.Logger
	}

	// handlerFunc runs one directive with its payload and resolved options.
	handlerFunc func(ctx context.Context, data any, opts Options) bool

	// Plugin dispatches directives to their handlers.
	Plugin struct {
		host     Host
		runner   shell.Runner
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		handlers map[Name]handlerFunc
	}

	// Option configures a Plugin.
	Option func(*Plugin)
)

// WithStdIO sets the streams commands inherit when a stream is not suppressed.
// Defaults to the process streams.
func WithStdIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(p *Plugin) {
		p.stdin = stdin
		p.stdout = stdout
		p.stderr = stderr
	}
}

// New creates a Plugin that runs commands with runner on behalf of host.
func New(host Host, runner shell.Runner, opts ...Option) *Plugin {
	p := &Plugin{
		host:   host,
		runner: runner,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	p.handlers = map[Name]handlerFunc{
		InstallRustup: p.installRustup,
		Cargo:         p.cargo,
		CargoUpdate:   p.cargoUpdate,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CanHandle reports whether name is one of this plugin's directives.
func (p *Plugin) CanHandle(name Name) bool {
	_, ok := p.handlers[name]
	return ok
}

// Handle runs directive name with its payload and reports success.
func (p *Plugin) Handle(ctx context.Context, name Name, data any) bool {
	handler, ok := p.handlers[name]
	if !ok {
		p.log().Error("cannot handle directive", "directive", name)
		return false
	}

	opts := Resolve(name, p.host.Defaults(name))
	p.log().Debug("resolved options", "directive", name,
		"stdin", opts.Stdin, "stdout", opts.Stdout, "stderr", opts.Stderr, "force_intel", opts.ForceIntel)

	return handler(ctx, data, opts)
}

func (p *Plugin) log() *log.Logger {
	return p.host.Logger()
}
