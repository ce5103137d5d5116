// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	// InstallRustup installs the rustup toolchain installer.
	InstallRustup Name = "install-rustup"
	// Cargo installs the listed cargo packages.
	Cargo Name = "cargo"
	// CargoUpdate updates every installed cargo package.
	CargoUpdate Name = "cargo-update"
)

// ErrUnknownDirective is the sentinel error wrapped by UnknownDirectiveError.
var ErrUnknownDirective = errors.New("unknown directive")

type (
	// Name identifies a directive.
	Name string

	// UnknownDirectiveError is returned when a Name is not one of the known directives.
	UnknownDirectiveError struct {
		Value Name
	}
)

// Names returns every known directive, sorted.
func Names() []Name {
	names := []Name{InstallRustup, Cargo, CargoUpdate}
	slices.Sort(names)
	return names
}

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Name is a known directive,
// and a list of validation errors if it is not.
func (n Name) IsValid() (bool, []error) {
	switch n {
	case InstallRustup, Cargo, CargoUpdate:
		return true, nil
	default:
		return false, []error{&UnknownDirectiveError{Value: n}}
	}
}

// Error implements the error interface for UnknownDirectiveError.
func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive %q (valid: cargo, cargo-update, install-rustup)", e.Value)
}

// Unwrap returns ErrUnknownDirective for errors.Is() compatibility.
func (e *UnknownDirectiveError) Unwrap() error { return ErrUnknownDirective }
