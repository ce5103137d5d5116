// SPDX-License-Identifier: MPL-2.0

// Package builtin provides in-process replacements for the external
// utilities dotcargo's command templates pipe through, so the virtual shell
// runtime can run an existence check such as
//
//	cargo install --list | grep "^ripgrep "
//
// on hosts that ship no grep. Only the program being managed (cargo, curl,
// rustup) must exist on PATH.
//
// Builtins report status the way the shell expects: a non-matching grep
// returns interp.ExitStatus(1) and usage errors return ExitStatus(2) after a
// message on stderr. Any other error aborts the interpreter.
package builtin
