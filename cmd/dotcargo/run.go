// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/directive"
	"github.com/dotcargo/dotcargo/internal/issue"
	"github.com/dotcargo/dotcargo/internal/logging"
	"github.com/dotcargo/dotcargo/internal/shell"
	"github.com/dotcargo/dotcargo/internal/taskfile"
	"github.com/dotcargo/dotcargo/internal/watch"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

type (
	// RunRequest captures the inputs of one `dotcargo run`.
	RunRequest struct {
		// TaskFile is the file to run; empty means search the working directory.
		TaskFile string
		// BaseDir overrides the directory commands run in (default: the
		// task file's directory).
		BaseDir string
		// Only restricts execution to these directives.
		Only []string
		// Except skips these directives.
		Except []string
		// Runtime overrides the configured runtime. Zero value means no override.
		Runtime shell.Mode
		// ConfigPath is the explicit --config value.
		ConfigPath string
		Verbose    bool
		Quiet      bool
	}

	// RunResult summarizes a run.
	RunResult struct {
		Executed int
		Skipped  int
		Failed   int
	}

	// TaskError reports one failed task.
	TaskError struct {
		Directive directive.Name
		Line      int
		Reason    string
	}

	// runHost implements directive.Host for a single run. File defaults are
	// replaced wholesale by each defaults entry, on top of config defaults.
	runHost struct {
		baseDir      string
		logger       *log.Logger
		cfg          *config.Config
		fileDefaults map[directive.Name]directive.Overrides
	}
)

// Error implements the error interface for TaskError.
func (e *TaskError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Directive, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Directive, e.Reason)
}

// BaseDirectory returns the directory commands run in.
func (h *runHost) BaseDirectory() string { return h.baseDir }

// Logger returns the run logger.
func (h *runHost) Logger() *log.Logger { return h.logger }

// Defaults layers task-file defaults over configured defaults.
func (h *runHost) Defaults(name directive.Name) directive.Overrides {
	return h.cfg.DefaultsFor(name).Merge(h.fileDefaults[name])
}

func newRunCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		baseDir string
		only    []string
		except  []string
		runtime string
		watchFS bool
	)

	runCmd := &cobra.Command{
		Use:   "run [task-file]",
		Short: "Run the directives of a task file",
		Long: `Run the directives of a task file in order.

Without an argument dotcargo looks for install.conf.yaml, dotcargo.cue and
dotcargo.toml in the current directory. Tasks keep running after a failure;
the exit status is 1 if any task failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := RunRequest{
				BaseDir:    baseDir,
				Only:       only,
				Except:     except,
				Runtime:    shell.Mode(runtime),
				ConfigPath: flags.configPath,
				Verbose:    flags.verbose,
				Quiet:      flags.quiet,
			}
			if len(args) == 1 {
				req.TaskFile = args[0]
			}
			if watchFS {
				return app.Watch(cmd.Context(), req)
			}
			_, err := app.Run(cmd.Context(), req)
			return err
		},
	}

	runCmd.Flags().StringVarP(&baseDir, "base-directory", "d", "", "directory commands run in (default is the task file's directory)")
	runCmd.Flags().StringSliceVar(&only, "only", nil, "only run these directives")
	runCmd.Flags().StringSliceVar(&except, "except", nil, "skip these directives")
	runCmd.Flags().StringVar(&runtime, "runtime", "", "shell runtime: native or virtual (default from config)")
	runCmd.Flags().BoolVarP(&watchFS, "watch", "w", false, "re-run when the task file or config file changes")
	runCmd.MarkFlagsMutuallyExclusive("only", "except")

	return runCmd
}

// Run executes every task of the requested file. Failed tasks do not stop the
// run; they are collected into an ExitError with code 1.
func (a *App) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	var result RunResult

	if req.Runtime != "" {
		if valid, errs := req.Runtime.IsValid(); !valid {
			return result, errors.Join(errs...)
		}
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath})
	if err != nil {
		a.renderIssue(issue.ConfigLoadFailedId, nil)
		return result, err
	}

	logger := logging.New(a.stderr, logging.Options{
		Verbose: req.Verbose || cfg.UI.Verbose,
		Quiet:   req.Quiet,
	})

	path, err := a.resolveTaskFile(req.TaskFile)
	if err != nil {
		a.renderIssue(issue.TaskFileNotFoundId, cfg)
		return result, err
	}

	doc, err := taskfile.Load(path)
	if err != nil {
		a.renderIssue(issue.TaskFileParseErrorId, cfg)
		return result, issue.NewErrorContext().
			WithOperation("load task file").
			WithResource(path).
			WithSuggestion("Check the file against 'dotcargo directives'").
			Wrap(err).
			BuildError()
	}
	for _, w := range doc.Warnings {
		logger.Warn(w)
	}

	baseDir, err := resolveBaseDir(req.BaseDir, path)
	if err != nil {
		return result, issue.WrapWithOperation(err, "resolve base directory")
	}

	mode := req.Runtime
	if mode == "" {
		mode = cfg.Runtime
	}
	runner, err := a.NewRunner(mode, cfg.Shell)
	if err != nil {
		return result, issue.WrapWithOperation(err, fmt.Sprintf("create %s runtime", mode))
	}
	logger.Debug("running task file", "file", path, "base", baseDir, "runtime", runner.Name())

	host := &runHost{baseDir: baseDir, logger: logger, cfg: cfg}
	plugin := directive.New(host, runner, directive.WithStdIO(a.stdin, a.stdout, a.stderr))
	filter := newDirectiveFilter(req.Only, req.Except)

	var (
		failures     *multierror.Error
		unhandled    bool
		cargoFailing bool
	)
	for _, task := range doc.Tasks {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run interrupted: %w", err)
		}

		if task.IsDefaults() {
			host.fileDefaults = task.Defaults
			continue
		}
		if !filter.allows(task.Directive) {
			result.Skipped++
			continue
		}

		result.Executed++
		if !plugin.CanHandle(task.Directive) {
			logger.Error("Action not handled", "directive", task.Directive)
			unhandled = true
			failures = multierror.Append(failures, &TaskError{Directive: task.Directive, Line: task.Line, Reason: "not handled"})
			continue
		}
		if !plugin.Handle(ctx, task.Directive, task.Data) {
			cargoFailing = cargoFailing || task.Directive != directive.InstallRustup
			failures = multierror.Append(failures, &TaskError{Directive: task.Directive, Line: task.Line, Reason: "failed"})
		}
	}

	if failures != nil {
		result.Failed = failures.Len()
		logger.Error("Some tasks were not executed successfully")
		if unhandled {
			a.renderIssue(issue.UnknownDirectiveId, cfg)
		}
		if cargoFailing && !cargoOnPath() {
			a.renderIssue(issue.CargoNotFoundId, cfg)
		} else {
			a.renderIssue(issue.DirectivesFailedId, cfg)
		}
		return result, &ExitError{Code: shell.FailureExitCode, Err: failures.ErrorOrNil()}
	}

	logger.Info("All tasks executed successfully")
	return result, nil
}

// Watch runs req once and then again after every change to the task file or
// the config file, until ctx is canceled. Failed runs are logged and do not
// end the watch.
func (a *App) Watch(ctx context.Context, req RunRequest) error {
	path, err := a.resolveTaskFile(req.TaskFile)
	if err != nil {
		return err
	}
	req.TaskFile = path

	verbose := req.Verbose
	if cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath}); err == nil {
		verbose = verbose || cfg.UI.Verbose
	}
	logger := logging.New(a.stderr, logging.Options{Verbose: verbose, Quiet: req.Quiet})

	files := []string{path}
	cfgPath, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: req.ConfigPath})
	if err != nil {
		logger.Warn("config file will not be watched", "err", err)
	} else if cfgPath != "" {
		files = append(files, cfgPath)
	}

	runOnce := func(ctx context.Context) error {
		_, err := a.Run(ctx, req)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			// Task failures were already logged by Run.
			return nil
		}
		return err
	}

	if err := runOnce(ctx); err != nil {
		logger.Error("run failed", "err", err)
	}

	w, err := watch.New(watch.Config{
		Files:    files,
		Debounce: a.watchDebounce,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("Change detected, running again", "files", changed)
			return runOnce(ctx)
		},
	})
	if err != nil {
		return err
	}

	logger.Info("Watching for changes", "files", files)
	return w.Run(ctx)
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// cargoOnPath reports whether a cargo executable is reachable through PATH,
// which both runtimes use to resolve it.
func cargoOnPath() bool {
	_, err := lookPath("cargo")
	return err == nil
}

func (a *App) resolveTaskFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", issue.NewErrorContext().
				WithOperation("open task file").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				Wrap(err).
				BuildError()
		}
		return path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	found, err := taskfile.Find(wd)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("find task file").
			WithResource(wd).
			WithSuggestion("Pass the task file explicitly: dotcargo run <file>").
			Wrap(err).
			BuildError()
	}
	return found, nil
}

func resolveBaseDir(baseDir, taskFile string) (string, error) {
	if baseDir == "" {
		baseDir = filepath.Dir(taskFile)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("base directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("base directory %s is not a directory", abs)
	}
	return abs, nil
}

// directiveFilter implements --only / --except.
type directiveFilter struct {
	only   map[directive.Name]bool
	except map[directive.Name]bool
}

func newDirectiveFilter(only, except []string) directiveFilter {
	f := directiveFilter{}
	if len(only) > 0 {
		f.only = make(map[directive.Name]bool, len(only))
		for _, n := range only {
			f.only[directive.Name(n)] = true
		}
	}
	if len(except) > 0 {
		f.except = make(map[directive.Name]bool, len(except))
		for _, n := range except {
			f.except[directive.Name(n)] = true
		}
	}
	return f
}

func (f directiveFilter) allows(name directive.Name) bool {
	if f.only != nil && !f.only[name] {
		return false
	}
	return !f.except[name]
}
