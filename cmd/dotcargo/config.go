// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/directive"
	"github.com/dotcargo/dotcargo/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `dotcargo config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dotcargo configuration",
		Long: `Manage dotcargo configuration.

Configuration is stored in:
  - Linux: ~/.config/dotcargo/config.cue
  - macOS: ~/Library/Application Support/dotcargo/config.cue
  - Windows: %APPDATA%\dotcargo\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.FileName()))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), flags.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags *rootFlags) error {
	cfg, err := app.Config.Load(ctx, flags.loadOptions())
	if err != nil {
		app.renderIssue(issue.ConfigLoadFailedId, nil)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, pathErr := config.ResolvePath(flags.loadOptions())
	if pathErr == nil && path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("runtime"), valueStyle.Render(cfg.Runtime.String()))
	shellPath := cfg.Shell
	if shellPath == "" {
		shellPath = "(auto-detected)"
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("shell"), valueStyle.Render(shellPath))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("defaults"))
	for _, name := range directive.Names() {
		opts := directive.Resolve(name, cfg.DefaultsFor(name))
		fmt.Fprintf(out, "  %s: %s\n", name, valueStyle.Render(fmt.Sprintf(
			"stdin=%v stdout=%v stderr=%v force_intel=%v",
			opts.Stdin, opts.Stdout, opts.Stderr, opts.ForceIntel,
		)))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}
