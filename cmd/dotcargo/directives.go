// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/directive"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var directiveDocs = map[directive.Name]string{
	directive.InstallRustup: "Installs rustup with the official install script unless `rustup` " +
		"is already on PATH. Takes `true`; `false` is an error.\n\n" +
		"~~~yaml\n- install-rustup: true\n~~~",
	directive.Cargo: "Installs each listed package with `cargo install` unless " +
		"`cargo install --list` already shows it. Entries may carry a `tap/` " +
		"prefix and trailing flags: the bare name is used for the check, the " +
		"full entry for the install.\n\n" +
		"~~~yaml\n- cargo:\n    - ripgrep\n    - bat --locked\n~~~",
	directive.CargoUpdate: "Installs the cargo-update helper if needed, then runs " +
		"`cargo install-update --all`. Takes `true`; `false` is an error.\n\n" +
		"~~~yaml\n- cargo-update: true\n~~~",
}

func newDirectivesCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "directives",
		Short: "Describe the supported directives and their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), flags.loadOptions())
			if err != nil {
				return err
			}
			out, err := glamour.Render(directivesMarkdown(cfg), glamourStyle(cfg))
			if err != nil {
				return fmt.Errorf("failed to render directives: %w", err)
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}
}

// directivesMarkdown documents every directive with its options resolved
// against cfg.
func directivesMarkdown(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("# Directives\n\n")
	sb.WriteString("Options suppress a stream when `true`. `force_intel` prefixes every command with `arch --x86_64`.\n")

	for _, name := range directive.Names() {
		opts := directive.Resolve(name, cfg.DefaultsFor(name))
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n\n", name, directiveDocs[name])
		sb.WriteString("| option | value |\n|---|---|\n")
		fmt.Fprintf(&sb, "| %s | %v |\n", directive.KeyStdin, opts.Stdin)
		fmt.Fprintf(&sb, "| %s | %v |\n", directive.KeyStdout, opts.Stdout)
		fmt.Fprintf(&sb, "| %s | %v |\n", directive.KeyStderr, opts.Stderr)
		fmt.Fprintf(&sb, "| %s | %v |\n", directive.KeyForceIntel, opts.ForceIntel)
	}
	return sb.String()
}
