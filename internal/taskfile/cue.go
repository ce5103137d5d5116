// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	_ "embed"
	"fmt"

	"github.com/dotcargo/dotcargo/internal/cueutil"

	"cuelang.org/go/cue"
)

//go:embed taskfile_schema.cue
var taskfileSchema string

// parseCUE validates data against #File and walks tasks in declaration order.
func parseCUE(doc *Document, data []byte) error {
	v, err := cueutil.Unify(taskfileSchema, data, "#File",
		cueutil.WithFilename(doc.Path),
		cueutil.WithConcrete(true),
		cueutil.WithMaxFileSize(MaxFileSize),
	)
	if err != nil {
		return &ParseError{File: doc.Path, Err: err}
	}

	if defaults := v.LookupPath(cue.ParsePath(DefaultsKey)); defaults.Exists() {
		var raw map[string]any
		if err := defaults.Decode(&raw); err != nil {
			return &ParseError{File: doc.Path, Line: defaults.Pos().Line(), Err: err}
		}
		if err := doc.addTask(DefaultsKey, raw, defaults.Pos().Line()); err != nil {
			return err
		}
	}

	tasks := v.LookupPath(cue.ParsePath("tasks"))
	if !tasks.Exists() {
		return nil
	}
	list, err := tasks.List()
	if err != nil {
		return &ParseError{File: doc.Path, Err: err}
	}
	for list.Next() {
		fields, err := list.Value().Fields()
		if err != nil {
			return &ParseError{File: doc.Path, Line: list.Value().Pos().Line(), Err: err}
		}
		for fields.Next() {
			key := fields.Selector().Unquoted()
			var data any
			if err := fields.Value().Decode(&data); err != nil {
				return &ParseError{File: doc.Path, Line: fields.Value().Pos().Line(), Err: fmt.Errorf("%s: %w", key, err)}
			}
			if err := doc.addTask(key, data, fields.Value().Pos().Line()); err != nil {
				return err
			}
		}
	}
	return nil
}
