// Package loader turns multi-document .theorem text into schema.Documents.
//
// Decoding walks yaml.v3 nodes by hand instead of unmarshalling into
// structs: unknown keys must be rejected at every level, the top-level
// alias table must be applied exactly once, and every value keeps its
// line and column for diagnostics.
package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"theoremc/internal/diag"
	"theoremc/internal/schema"
	"theoremc/internal/source"
)

// LoadSource decodes every document of file in order. The error, when
// non-nil, is a *diag.Diagnostic for the first problem found.
func LoadSource(file *source.File) ([]schema.Document, error) {
	return Load(file.Path, file.Content)
}

// Load decodes the documents of text, attributing positions to name.
// Empty documents (a bare `---`) are skipped and do not take an index.
func Load(name string, text []byte) ([]schema.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(text))
	var docs []schema.Document
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, syntaxError(name, err)
		}
		root := documentRoot(&node)
		if root == nil {
			continue
		}
		d := &decoder{source: name, doc: uint32(len(docs))} //nolint:gosec // bounded by input size
		doc, derr := d.document(root)
		if derr != nil {
			return nil, derr
		}
		doc.Source = name
		doc.Index = len(docs)
		docs = append(docs, doc)
	}
}

// documentRoot unwraps the document node; nil means the document is empty.
func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" && n.Value == "" {
		return nil
	}
	return n
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// syntaxError converts a yaml.v3 parse error. The library reports only a
// line, embedded in the message.
func syntaxError(name string, err error) *diag.Diagnostic {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	loc := diag.Location{Source: name}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		if line, perr := strconv.ParseUint(m[1], 10, 32); perr == nil {
			loc.Line, loc.Column = uint32(line), 1
		}
	}
	return diag.Errorf(diag.SchemaParseFailure, loc, "YAML deserialization failed: %s", msg).
		WithArg("reason", msg)
}
