// SPDX-License-Identifier: MPL-2.0

// Package shell runs command strings through a shell on behalf of directive handlers.
//
// Two runtimes implement the Runner interface:
//   - native: hands the command to the host POSIX shell (`sh -c`)
//   - virtual: interprets the command with the embedded mvdan/sh interpreter
//
// A Request carries the command, its working directory and the three standard
// streams. A nil stream means the null device, which is how callers suppress
// stdin, stdout or stderr.
package shell
