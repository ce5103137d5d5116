// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

type tomlFile struct {
	Defaults map[string]any   `toml:"defaults"`
	Tasks    []map[string]any `toml:"tasks"`
}

// parseTOML decodes [defaults.*] tables and the [[tasks]] array. Tables
// cannot carry key order, so a task table with several directives runs them
// sorted by name; top-level defaults apply before the first task.
func parseTOML(doc *Document, data []byte) error {
	var f tomlFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		pe := &ParseError{File: doc.Path, Err: err}
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			pe.Line, _ = decErr.Position()
		}
		return pe
	}

	if f.Defaults != nil {
		if err := doc.addTask(DefaultsKey, f.Defaults, 0); err != nil {
			return err
		}
	}

	for _, table := range f.Tasks {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := doc.addTask(k, table[k], 0); err != nil {
				return err
			}
		}
	}
	return nil
}
