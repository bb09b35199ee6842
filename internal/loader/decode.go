package loader

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"

	"theoremc/internal/diag"
	"theoremc/internal/schema"
	"theoremc/internal/source"
)

// maxAliasExpansions bounds how many aliases one document may expand while
// decoding nested values and steps.
const maxAliasExpansions = 10000

// decoder carries the file name and document index of the document being built.
type decoder struct {
	source string
	doc    uint32

	// active holds the nodes on the current decoding path.
	active  map[*yaml.Node]struct{}
	aliases int
}

type field struct {
	name string
	key  *yaml.Node
	val  *yaml.Node // as written; consumers resolve aliases
}

func toU32(v int) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0
	}
	return out
}

func (d *decoder) pos(n *yaml.Node) source.Pos {
	return source.Pos{Doc: d.doc, Line: toU32(n.Line), Col: toU32(n.Column)}
}

func (d *decoder) loc(n *yaml.Node) diag.Location {
	return diag.Location{Source: d.source, Line: toU32(n.Line), Column: toU32(n.Column)}
}

// fail builds a structural (parse failure) diagnostic at n.
func (d *decoder) fail(n *yaml.Node, format string, args ...any) *diag.Diagnostic {
	msg := fmt.Sprintf(format, args...)
	return diag.NewError(diag.SchemaParseFailure, d.loc(n), msg).WithArg("reason", msg)
}

// identifier validates an author-chosen name and returns it as Text.
func (d *decoder) identifier(n *yaml.Node, what string) (schema.Text, error) {
	text, err := d.str(n, what)
	if err != nil {
		return text, err
	}
	var ie *schema.IdentifierError
	if errors.As(schema.ValidateIdentifier(text.Value), &ie) {
		return text, diag.NewError(diag.SchemaInvalidIdentifier, d.loc(n), ie.Error()).
			WithArg("identifier", ie.Identifier).
			WithArg("reason", ie.Reason)
	}
	return text, nil
}

// resolve follows YAML aliases (*anchor) to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// enter resolves n for one of the recursive decoders and marks the target
// as being decoded. A target already on the path is a recursive alias. The
// returned leave func must be called once the target is done.
func (d *decoder) enter(n *yaml.Node, what string) (*yaml.Node, func(), error) {
	target := n
	for target != nil && target.Kind == yaml.AliasNode {
		d.aliases++
		if d.aliases > maxAliasExpansions {
			return nil, nil, d.fail(n, "%s: too many YAML alias expansions (limit %d)", what, maxAliasExpansions)
		}
		target = target.Alias
	}
	if target == nil {
		return nil, nil, d.fail(n, "%s: unresolved YAML alias", what)
	}
	if _, ok := d.active[target]; ok {
		return nil, nil, d.fail(n, "%s: recursive YAML alias", what)
	}
	if d.active == nil {
		d.active = make(map[*yaml.Node]struct{})
	}
	d.active[target] = struct{}{}
	return target, func() { delete(d.active, target) }, nil
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return "null"
		case "!!bool":
			return "boolean `" + n.Value + "`"
		case "!!int":
			return "integer `" + n.Value + "`"
		case "!!float":
			return "floating point `" + n.Value + "`"
		case "!!str":
			return "string " + strconv.Quote(n.Value)
		}
		return n.Tag + " `" + n.Value + "`"
	}
	return "an unsupported node"
}

func (d *decoder) invalidType(n *yaml.Node, what, expected string) *diag.Diagnostic {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return d.fail(n, "%s: null values are not permitted in theorem documents", what)
	}
	return d.fail(n, "%s: invalid type: %s, expected %s", what, describe(n), expected)
}

// mapping returns the entries of a mapping node in source order, rejecting
// non-string keys, merge keys and duplicate keys.
func (d *decoder) mapping(n *yaml.Node, what string) ([]field, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.invalidType(n, what, "a mapping")
	}
	fields := make([]field, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := resolve(n.Content[i]), n.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Tag == "!!null" {
			return nil, d.fail(key, "%s: mapping keys must be strings", what)
		}
		if key.Tag == "!!merge" {
			return nil, d.fail(key, "%s: merge keys (<<) are not supported", what)
		}
		if _, dup := seen[key.Value]; dup {
			return nil, d.fail(key, "%s: duplicate field `%s`", what, key.Value)
		}
		seen[key.Value] = struct{}{}
		fields = append(fields, field{name: key.Value, key: key, val: val})
	}
	return fields, nil
}

// strict checks a nested object's keys against known names and reports
// missing required ones, serde-style.
func (d *decoder) strict(n *yaml.Node, what string, fields []field, known, required []string) error {
	present := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !slices.Contains(known, f.name) {
			return d.fail(f.key, "%s: unknown field `%s`, expected %s", what, f.name, oneOf(known))
		}
		present[f.name] = struct{}{}
	}
	for _, r := range required {
		if _, ok := present[r]; !ok {
			return d.fail(n, "%s: missing field `%s`", what, r)
		}
	}
	return nil
}

func oneOf(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return "one of " + strings.Join(quoted, ", ")
}

func (d *decoder) str(n *yaml.Node, what string) (schema.Text, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return schema.Text{}, d.invalidType(n, what, "a string")
	}
	return source.At(n.Value, d.pos(n)), nil
}

func (d *decoder) strList(n *yaml.Node, what string) ([]schema.Text, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.invalidType(n, what, "a sequence")
	}
	out := make([]schema.Text, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := d.str(item, fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) sequence(n *yaml.Node, what string) ([]*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.invalidType(n, what, "a sequence")
	}
	return n.Content, nil
}

func (d *decoder) u32(n *yaml.Node, what string) (source.Spanned[uint32], error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		return source.Spanned[uint32]{}, d.invalidType(n, what, "u32")
	}
	var v int64
	if err := n.Decode(&v); err != nil {
		return source.Spanned[uint32]{}, d.fail(n, "%s: invalid value: integer `%s`, expected u32", what, n.Value)
	}
	if v < 0 || v > math.MaxUint32 {
		return source.Spanned[uint32]{}, d.fail(n, "%s: invalid value: integer `%s`, expected u32", what, n.Value)
	}
	return source.At(uint32(v), d.pos(n)), nil
}

func (d *decoder) boolean(n *yaml.Node, what string) (source.Spanned[bool], error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return source.Spanned[bool]{}, d.invalidType(n, what, "a boolean")
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		return source.Spanned[bool]{}, d.fail(n, "%s: %v", what, err)
	}
	return source.At(v, d.pos(n)), nil
}
