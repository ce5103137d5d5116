// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log logger shared by the CLI and
// the directive plugin.
package logging

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "dotcargo"

// Options configures New.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// Quiet limits output to errors. Quiet wins over Verbose.
	Quiet bool
	// JSON switches to the JSON formatter.
	JSON bool
}

// Level maps the verbosity flags to a log level.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	formatter := log.TextFormatter
	if opts.JSON {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:    Prefix,
		Level:     opts.Level(),
		Formatter: formatter,
	})
	logger.SetStyles(styles())
	return logger
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Prefix = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Bold(true)
	s.Keys["package"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	s.Values["package"] = lipgloss.NewStyle().Bold(true)
	return s
}
