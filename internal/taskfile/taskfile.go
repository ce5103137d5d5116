// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotcargo/dotcargo/internal/cueutil"
	"github.com/dotcargo/dotcargo/internal/directive"

	"github.com/spf13/cast"
	"golang.org/x/exp/slices"
)

// DefaultsKey is the reserved entry name that sets directive defaults.
const DefaultsKey = "defaults"

// MaxFileSize is the largest task file accepted in any format.
const MaxFileSize int64 = 1 << 20

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
)

var (
	// Candidates are the file names Find looks for, in order.
	Candidates = []string{"install.conf.yaml", "dotcargo.cue", "dotcargo.toml"}

	// ErrNotFound is returned by Find when no candidate exists.
	ErrNotFound = errors.New("no task file found")
	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported task file format")
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("invalid task file")
)

type (
	// Format is a task file syntax.
	Format string

	// Task is one entry of a task file: either a directive invocation or,
	// when Directive is "defaults", a change of directive defaults.
	Task struct {
		Directive directive.Name
		Data      any
		// Defaults is set for "defaults" entries only.
		Defaults map[directive.Name]directive.Overrides
		// Line is the 1-based source line, 0 when unknown.
		Line int
	}

	// Document is a parsed task file.
	Document struct {
		Path   string
		Format Format
		Tasks  []Task
		// Warnings lists ignored content, such as options for other tools.
		Warnings []string
	}

	// ParseError describes a malformed task file.
	ParseError struct {
		File string
		Line int
		Err  error
	}
)

// IsDefaults reports whether the task sets defaults.
func (t Task) IsDefaults() bool {
	return t.Directive == DefaultsKey
}

// Directives returns the directive names of the non-defaults tasks, in order.
func (d *Document) Directives() []directive.Name {
	var names []directive.Name
	for _, t := range d.Tasks {
		if !t.IsDefaults() {
			names = append(names, t.Directive)
		}
	}
	return names
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the cause. errors.Is(err, ErrParse) also holds.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Find returns the first candidate file present in dir.
func Find(dir string) (string, error) {
	for _, name := range Candidates {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNotFound, dir, strings.Join(Candidates, ", "))
}

// Load reads and parses the task file at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	return Parse(data, format, path)
}

// Parse decodes data in the given format. filename is used in errors.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	doc := &Document{Path: filename, Format: format}

	if err := cueutil.CheckFileSize(data, MaxFileSize, filename); err != nil {
		return nil, err
	}

	var err error
	switch format {
	case FormatYAML:
		err = parseYAML(doc, data)
	case FormatTOML:
		err = parseTOML(doc, data)
	case FormatCUE:
		err = parseCUE(doc, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// addTask appends a task, converting "defaults" entries.
func (d *Document) addTask(key string, data any, line int) error {
	if key != DefaultsKey {
		d.Tasks = append(d.Tasks, Task{Directive: directive.Name(key), Data: data, Line: line})
		return nil
	}

	defaults, err := d.parseDefaults(data)
	if err != nil {
		return &ParseError{File: d.Path, Line: line, Err: err}
	}
	d.Tasks = append(d.Tasks, Task{Directive: DefaultsKey, Defaults: defaults, Line: line})
	return nil
}

// parseDefaults converts a directive→options mapping. Options of directives
// handled elsewhere (link, shell...) are recorded as warnings and skipped.
func (d *Document) parseDefaults(raw any) (map[directive.Name]directive.Overrides, error) {
	if raw == nil {
		return map[directive.Name]directive.Overrides{}, nil
	}
	byDirective, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, errors.New("defaults must be a mapping of directive names to options")
	}

	keys := make([]string, 0, len(byDirective))
	for k := range byDirective {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[directive.Name]directive.Overrides, len(keys))
	for _, key := range keys {
		name := directive.Name(key)
		if valid, _ := name.IsValid(); !valid {
			d.Warnings = append(d.Warnings, fmt.Sprintf("defaults for %q ignored", key))
			continue
		}
		opts, err := cast.ToStringMapE(byDirective[key])
		if err != nil {
			return nil, fmt.Errorf("defaults.%s must be a mapping of options", key)
		}
		ov, unknown, err := directive.ParseOverrides(opts)
		if err != nil {
			return nil, fmt.Errorf("defaults.%s: %w", key, err)
		}
		for _, u := range unknown {
			d.Warnings = append(d.Warnings, fmt.Sprintf("unknown option %q in defaults.%s ignored", u, key))
		}
		out[name] = ov
	}
	return out, nil
}
