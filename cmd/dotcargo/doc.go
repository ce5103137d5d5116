// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the dotcargo CLI: it reads a task file, layers
// directive defaults from the configuration and the file, and drives the
// directive plugin over every task in order.
package cmd
