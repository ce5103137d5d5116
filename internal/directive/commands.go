// SPDX-License-Identifier: MPL-2.0

package directive

import "strings"

// Command templates. {pkg} is the full specifier, {pkg_name} the bare name.
// Values are interpolated verbatim; the shell sees them unquoted.
const (
	rustupCheck   = `command -v rustup`
	rustupInstall = `curl --proto "=https" --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y --no-modify-path`

	cargoCheck   = `cargo install --list | grep "^{pkg_name} "`
	cargoInstall = `cargo install {pkg}`

	cargoUpdateCheck   = `cargo install-update -V`
	cargoUpdateInstall = `cargo install cargo-update`
	cargoUpdateAll     = `cargo install-update --all`

	// archPrefix runs the command under Rosetta on Apple silicon.
	archPrefix = "arch --x86_64 "
)

type (
	// installer pairs an install template with its existence-check template.
	installer struct {
		install string
		check   string
	}
)

var (
	rustupInstaller      = installer{install: rustupInstall, check: rustupCheck}
	cargoInstaller       = installer{install: cargoInstall, check: cargoCheck}
	cargoUpdateInstaller = installer{install: cargoUpdateInstall, check: cargoUpdateCheck}
)

// installCommand renders the install template for spec.
func (i installer) installCommand(spec PackageSpec) string {
	return strings.ReplaceAll(i.install, "{pkg}", string(spec))
}

// checkCommand renders the existence-check template for a bare name.
func (i installer) checkCommand(name string) string {
	return strings.ReplaceAll(i.check, "{pkg_name}", name)
}

// withArch applies the architecture prefix when forced.
func withArch(cmd string, opts Options) string {
	if opts.ForceIntel {
		return archPrefix + cmd
	}
	return cmd
}
