// SPDX-License-Identifier: MPL-2.0

// Package directive implements the cargo directives: install-rustup, cargo
// and cargo-update.
//
// A Plugin receives a directive name and its declarative payload from a Host,
// resolves the effective Options (built-in defaults overlaid by the host's
// per-directive Overrides) and dispatches to the matching handler. Package
// handlers run a check-then-install step per package: an existence check with
// every stream discarded, then the install command only when the check fails.
//
// Handlers never return Go errors. Refusals, invalid package specifiers and
// failed installs are logged through the host logger and reported as false.
package directive
