// Package catalog loads the declarative definition files the generators work
// from: the enum catalog and the message catalog.
//
// Catalog documents are YAML (JSON documents are accepted as-is). Each is a
// single top-level mapping keyed by entity name. Document order is preserved
// everywhere because an entity's position in its catalog is its ordinal index
// in generated code.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/schemagen/errors"
)

// LoadError reports a definitions file that is missing, unreadable, or not
// parseable as structured data.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == errors.ErrLoad }

// SchemaError reports a parseable document whose structure does not match
// what the catalog requires.
type SchemaError struct {
	Path   string
	Entity string // empty for document-level problems
	Line   int
	Reason string
}

func (e *SchemaError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Entity == "" {
		return fmt.Sprintf("schema error in %s: %s", where, e.Reason)
	}
	return fmt.Sprintf("schema error in %s: %s: %s", where, e.Entity, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == errors.ErrSchema }

// readDocument reads path and returns the top-level mapping node, or nil for
// an empty document.
func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return parseDocument(path, data)
}

func parseDocument(path string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &SchemaError{
			Path:   path,
			Line:   root.Line,
			Reason: "top level must be a mapping keyed by type name",
		}
	}
	return root, nil
}

// pair is one key/value entry of a mapping node.
type pair struct {
	key   string
	line  int
	value *yaml.Node
}

// entries returns the mapping's entries in document order, rejecting
// duplicate and non-scalar keys.
func entries(path, entity string, m *yaml.Node) ([]pair, error) {
	out := make([]pair, 0, len(m.Content)/2)
	seen := make(map[string]bool, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := resolve(m.Content[i])
		if k.Kind != yaml.ScalarNode {
			return nil, &SchemaError{Path: path, Entity: entity, Line: k.Line, Reason: "mapping keys must be scalars"}
		}
		if seen[k.Value] {
			return nil, &SchemaError{Path: path, Entity: entity, Line: k.Line, Reason: fmt.Sprintf("duplicate key %q", k.Value)}
		}
		seen[k.Value] = true
		out = append(out, pair{key: k.Value, line: k.Line, value: resolve(m.Content[i+1])})
	}
	return out, nil
}

// resolve follows YAML aliases to their anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// scalar decodes a scalar node into out, reporting a SchemaError on type
// mismatch.
func scalar(path, entity, field string, n *yaml.Node, out interface{}) error {
	if n.Kind != yaml.ScalarNode {
		return &SchemaError{Path: path, Entity: entity, Line: n.Line, Reason: fmt.Sprintf("%s must be a scalar", field)}
	}
	if err := n.Decode(out); err != nil {
		return &SchemaError{Path: path, Entity: entity, Line: n.Line, Reason: fmt.Sprintf("%s: %v", field, err)}
	}
	return nil
}
