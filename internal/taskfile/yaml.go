// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// parseYAML walks the node tree so tasks keep their file order, including
// several directives inside a single list entry.
func parseYAML(doc *Document, data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return &ParseError{File: doc.Path, Err: err}
	}

	// Empty file.
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return nil
	}
	if top.Kind != yaml.SequenceNode {
		return &ParseError{File: doc.Path, Line: top.Line, Err: errors.New("top level must be a list of tasks")}
	}

	for _, entry := range top.Content {
		if entry.Kind != yaml.MappingNode {
			return &ParseError{File: doc.Path, Line: entry.Line, Err: errors.New("each task must be a mapping of directive to data")}
		}
		for i := 0; i+1 < len(entry.Content); i += 2 {
			keyNode, valueNode := entry.Content[i], entry.Content[i+1]

			var data any
			if err := valueNode.Decode(&data); err != nil {
				return &ParseError{File: doc.Path, Line: valueNode.Line, Err: fmt.Errorf("%s: %w", keyNode.Value, err)}
			}
			if err := doc.addTask(keyNode.Value, data, keyNode.Line); err != nil {
				return err
			}
		}
	}
	return nil
}
