// SPDX-License-Identifier: MPL-2.0

// Package taskfile reads directive files into an ordered list of tasks.
//
// Three formats are accepted. YAML (and JSON) files use the dotbot layout: a
// top-level list whose entries map directive names to their data, with
// `defaults` entries changing the options of the directives that follow:
//
//	- defaults:
//	    cargo:
//	      stderr: false
//	- install-rustup: true
//	- cargo: [ripgrep, bat --locked]
//
// TOML files put defaults in [defaults.<directive>] tables and tasks in a
// [[tasks]] array. CUE files carry `defaults` and `tasks` fields validated
// against an embedded schema.
package taskfile
