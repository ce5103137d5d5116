// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/exp/slices"
)

// Option keys recognized in per-directive defaults.
const (
	KeyStdin      = "stdin"
	KeyStdout     = "stdout"
	KeyStderr     = "stderr"
	KeyForceIntel = "force_intel"
)

// ErrInvalidOverride is the sentinel error wrapped by InvalidOverrideError.
var ErrInvalidOverride = errors.New("invalid option override")

type (
	// Options is the resolved option record for one directive invocation.
	// The stream fields suppress the stream when true.
	Options struct {
		Stdin      bool
		Stdout     bool
		Stderr     bool
		ForceIntel bool
	}

	// Overrides holds caller-supplied option values. A nil field leaves the
	// underlying value untouched.
	Overrides struct {
		Stdin      *bool `json:"stdin,omitempty" mapstructure:"stdin"`
		Stdout     *bool `json:"stdout,omitempty" mapstructure:"stdout"`
		Stderr     *bool `json:"stderr,omitempty" mapstructure:"stderr"`
		ForceIntel *bool `json:"force_intel,omitempty" mapstructure:"force_intel"`
	}

	// InvalidOverrideError is returned when an override value is not a boolean.
	InvalidOverrideError struct {
		Key   string
		Value any
	}
)

// Builtin returns the built-in default options for a directive.
// Unknown directives get the zero Options (every stream inherited).
func Builtin(name Name) Options {
	switch name {
	case Cargo:
		return Options{Stderr: true}
	case CargoUpdate:
		return Options{Stdout: true}
	default:
		return Options{}
	}
}

// Resolve returns the built-in options for name overlaid with ov.
func Resolve(name Name, ov Overrides) Options {
	return Builtin(name).Apply(ov)
}

// Apply returns a copy of o with every field set in ov replaced.
func (o Options) Apply(ov Overrides) Options {
	if ov.Stdin != nil {
		o.Stdin = *ov.Stdin
	}
	if ov.Stdout != nil {
		o.Stdout = *ov.Stdout
	}
	if ov.Stderr != nil {
		o.Stderr = *ov.Stderr
	}
	if ov.ForceIntel != nil {
		o.ForceIntel = *ov.ForceIntel
	}
	return o
}

// Merge layers top over ov: fields set in top win.
func (ov Overrides) Merge(top Overrides) Overrides {
	if top.Stdin != nil {
		ov.Stdin = top.Stdin
	}
	if top.Stdout != nil {
		ov.Stdout = top.Stdout
	}
	if top.Stderr != nil {
		ov.Stderr = top.Stderr
	}
	if top.ForceIntel != nil {
		ov.ForceIntel = top.ForceIntel
	}
	return ov
}

// IsZero reports whether no field is set.
func (ov Overrides) IsZero() bool {
	return ov.Stdin == nil && ov.Stdout == nil && ov.Stderr == nil && ov.ForceIntel == nil
}

// ParseOverrides converts a loosely-typed mapping (as decoded from YAML, TOML
// or CUE) into Overrides. Keys are matched case-insensitively; unrecognized
// keys are returned so the caller can report them.
func ParseOverrides(raw map[string]any) (Overrides, []string, error) {
	var (
		ov      Overrides
		unknown []string
	)
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		var target **bool
		switch strings.ToLower(key) {
		case KeyStdin:
			target = &ov.Stdin
		case KeyStdout:
			target = &ov.Stdout
		case KeyStderr:
			target = &ov.Stderr
		case KeyForceIntel:
			target = &ov.ForceIntel
		default:
			unknown = append(unknown, key)
			continue
		}
		v, err := cast.ToBoolE(raw[key])
		if err != nil {
			return Overrides{}, nil, &InvalidOverrideError{Key: key, Value: raw[key]}
		}
		*target = &v
	}
	return ov, unknown, nil
}

// Error implements the error interface for InvalidOverrideError.
func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid value %v for option %q: expected a boolean", e.Value, e.Key)
}

// Unwrap returns ErrInvalidOverride for errors.Is() compatibility.
func (e *InvalidOverrideError) Unwrap() error { return ErrInvalidOverride }
