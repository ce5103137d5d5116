// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"context"

	"github.com/dotcargo/dotcargo/internal/shell"
)

// ensure runs check-then-install for one package specifier.
func (p *Plugin) ensure(ctx context.Context, inst installer, spec PackageSpec, opts Options) bool {
	name, err := spec.Name()
	if err != nil {
		if spec.IsBlank() {
			p.log().Error("Cannot process blank package name")
		} else {
			p.log().Error("Cannot extract package name", "package", spec)
		}
		return false
	}
	// Specifiers are interpolated unquoted; one that breaks the shell
	// grammar would otherwise run a mangled command.
	if err := shell.Validate(inst.installCommand(spec)); err != nil {
		p.log().Error("Package specifier is not valid shell syntax", "package", spec, "err", err)
		return false
	}

	// The existence check never talks to the terminal.
	check, err := p.runner.Run(ctx, shell.Request{
		Command: withArch(inst.checkCommand(name), opts),
		Dir:     p.host.BaseDirectory(),
	})
	if err != nil {
		p.log().Debug("existence check could not run", "package", spec, "err", err)
	}
	if err == nil && check.IsSuccess() {
		p.log().Debug("already installed", "package", spec)
		return true
	}

	p.log().Debug("installing", "package", spec)
	code := p.invoke(ctx, inst.installCommand(spec), opts)
	if !code.IsSuccess() {
		p.log().Warn("Failed to install", "package", spec, "exit", code)
		return false
	}
	return true
}

// invoke runs cmd in the base directory with streams wired per opts.
func (p *Plugin) invoke(ctx context.Context, cmd string, opts Options) shell.ExitCode {
	req := shell.Request{
		Command: withArch(cmd, opts),
		Dir:     p.host.BaseDirectory(),
	}
	if !opts.Stdin {
		req.Stdin = p.stdin
	}
	if !opts.Stdout {
		req.Stdout = p.stdout
	}
	if !opts.Stderr {
		req.Stderr = p.stderr
	}

	code, err := p.runner.Run(ctx, req)
	if err != nil {
		p.log().Error("command could not run", "command", req.Command, "runtime", p.runner.Name(), "err", err)
		if code.IsSuccess() {
			code = shell.FailureExitCode
		}
	}
	return code
}
