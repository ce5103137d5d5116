// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrBlankPackage is returned for an empty or whitespace-only specifier.
	ErrBlankPackage = errors.New("blank package name")
	// ErrUnparseablePackage is returned when no bare name can be extracted.
	ErrUnparseablePackage = errors.New("unparseable package specifier")

	// pkgNamePattern drops an optional "tap/" prefix (up to the last slash)
	// and optional " flags" suffix (from the first space after the name).
	// One trailing newline is tolerated, as left by YAML block scalars.
	pkgNamePattern = regexp.MustCompile(`^(?:.+/)?(.+?)(?: .+)?\n?$`)
)

type (
	// PackageSpec is a package specifier of the form [tap/]name[ flags...].
	// The full specifier is passed to the install command; only the bare
	// name is used for the existence check.
	PackageSpec string

	// InvalidPackageSpecError is returned when a PackageSpec cannot be used.
	// It wraps ErrBlankPackage or ErrUnparseablePackage.
	InvalidPackageSpecError struct {
		Value PackageSpec
		Err   error
	}
)

// String returns the specifier as written.
func (p PackageSpec) String() string { return string(p) }

// IsBlank reports whether the specifier is empty or whitespace-only.
func (p PackageSpec) IsBlank() bool {
	return strings.TrimSpace(string(p)) == ""
}

// Name extracts the bare package name.
func (p PackageSpec) Name() (string, error) {
	if p.IsBlank() {
		return "", &InvalidPackageSpecError{Value: p, Err: ErrBlankPackage}
	}
	m := pkgNamePattern.FindStringSubmatch(string(p))
	if m == nil {
		return "", &InvalidPackageSpecError{Value: p, Err: ErrUnparseablePackage}
	}
	return m[1], nil
}

// IsValid returns whether a bare name can be extracted from the specifier.
func (p PackageSpec) IsValid() (bool, []error) {
	if _, err := p.Name(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackageSpecError.
func (e *InvalidPackageSpecError) Error() string {
	return fmt.Sprintf("%s %q", e.Err, e.Value)
}

// Unwrap returns the underlying sentinel error.
func (e *InvalidPackageSpecError) Unwrap() error { return e.Err }
