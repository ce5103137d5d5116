// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
	quiet      bool
}

func (f *rootFlags) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: f.configPath}
}

// NewRootCommand builds the dotcargo command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dotcargo",
		Short: "Install and update cargo packages from dotfile task files",
		Long: TitleStyle.Render("dotcargo") + SubtitleStyle.Render(" - cargo directives for your dotfiles") + `

dotcargo reads a dotbot-style task file and handles three directives:
install-rustup, cargo and cargo-update. Every package is checked before it
is installed, so running the same file twice is cheap.

` + SubtitleStyle.Render("Examples:") + `
  dotcargo run                       Run ./install.conf.yaml
  dotcargo run dotcargo.cue          Run a CUE task file
  dotcargo run --only cargo          Run only the cargo tasks
  dotcargo directives                Describe the directives and their options
  dotcargo config show               Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/dotcargo/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(newRunCommand(app, flags))
	rootCmd.AddCommand(newDirectivesCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				fang.DefaultErrorHandler(w, styles, err)
				return
			}
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			fmt.Fprintln(w, formatErrorForDisplay(err, verbose))
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return 1
	}
	return 0
}

// formatErrorForDisplay renders err for the terminal. ActionableErrors are
// shown with their suggestions, and with the cause chain when verbose.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ErrorStyle.Render("Error: ") + ae.Format(verbose)
	}
	return ErrorStyle.Render("Error: ") + err.Error()
}

// Execute runs the CLI and exits. Called by main.main().
func Execute() {
	os.Exit(Main())
}

// glamourStyle maps the configured color scheme to a glamour style.
func glamourStyle(cfg *config.Config) string {
	if cfg == nil {
		return "auto"
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// renderIssue writes the help page for id to the app's stderr. Rendering
// failures are ignored: the page only supplements the error itself.
func (a *App) renderIssue(id issue.Id, cfg *config.Config) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	if rendered, err := is.Render(glamourStyle(cfg)); err == nil {
		fmt.Fprint(a.stderr, rendered)
	}
}
