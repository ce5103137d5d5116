// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test doubles and helpers shared across packages.
//
// FakeRunner is a scripted shell.Runner that records every request. LogRecorder
// captures charmbracelet/log output as structured entries. The Must* helpers
// fail the test immediately instead of returning errors.
package testutil
