// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"io"

	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext is the execution environment of one builtin call.
	HandlerContext struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Dir resolves relative file operands.
		Dir string
	}

	handlerContextKey struct{}
)

// WithHandlerContext returns a ctx carrying hc. Builtins prefer it over the
// interpreter's handler context, which lets tests call them directly.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

func handlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	hc := interp.HandlerCtx(ctx)
	return &HandlerContext{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
	}
}

// usageError prints msg on stderr and returns exit status 2.
func usageError(hc *HandlerContext, name, format string, args ...any) error {
	if hc.Stderr != nil {
		fmt.Fprintf(hc.Stderr, "%s: %s\n", name, fmt.Sprintf(format, args...))
	}
	return interp.ExitStatus(2)
}
