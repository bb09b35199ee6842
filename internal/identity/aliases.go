package identity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"theoremc/internal/diag"
	"theoremc/internal/identity/dag"
)

type Format uint8

const (
	FormatAuto Format = iota // by file extension, YAML unless .toml
	FormatYAML
	FormatTOML
)

// FormatFor picks the format of an alias file from its name.
func FormatFor(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// aliasFile is the on-disk rename graph. Both forms may be used together:
//
//	aliases:
//	  "old/a.theorem#Old": "new/a.theorem#New"
//	rename:
//	  - {from: "x.theorem#A", to: "y.theorem#A"}
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases" toml:"aliases"`
	Rename  []renameEntry     `yaml:"rename" toml:"rename"`
}

type renameEntry struct {
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// AliasGraph maps deprecated identities to their canonical identity.
// The zero value and nil are empty graphs.
type AliasGraph struct {
	Source    string
	renames   map[ID]ID // direct old → new
	canonical map[ID]ID // old → end of its rename chain
}

// LoadAliases reads and checks the rename graph at path.
func LoadAliases(path string) (*AliasGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Errorf(diag.IOReadFailure, diag.Location{Source: path},
			"failed to read alias file: %v", err).WithArg("path", path)
	}
	return ParseAliases(path, data, FormatAuto)
}

// ParseAliases decodes a rename graph and rejects malformed entries,
// identities renamed to more than one target, and rename cycles. Errors
// are *diag.Diagnostic values.
func ParseAliases(name string, data []byte, format Format) (*AliasGraph, error) {
	if format == FormatAuto {
		format = FormatFor(name)
	}
	var file aliasFile
	if err := decodeAliasFile(data, format, &file); err != nil {
		return nil, invalid(name, "cannot decode alias file: %v", err)
	}

	targets := make(map[ID][]ID)
	add := func(from, to string) error {
		old, err := Parse(from)
		if err != nil {
			return invalid(name, "invalid alias source: %v", err)
		}
		next, err := Parse(to)
		if err != nil {
			return invalid(name, "invalid alias target for '%s': %v", from, err)
		}
		if !slices.Contains(targets[old], next) {
			targets[old] = append(targets[old], next)
		}
		return nil
	}
	for _, from := range slices.Sorted(maps.Keys(file.Aliases)) {
		if err := add(from, file.Aliases[from]); err != nil {
			return nil, err
		}
	}
	for _, r := range file.Rename {
		if err := add(r.From, r.To); err != nil {
			return nil, err
		}
	}

	if d := ambiguous(name, targets); d != nil {
		return nil, d
	}
	return build(name, targets)
}

func decodeAliasFile(data []byte, format Format, out *aliasFile) error {
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), out)
		if err != nil {
			return err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

func invalid(name, format string, args ...any) *diag.Diagnostic {
	msg := fmt.Sprintf(format, args...)
	return diag.NewError(diag.IdentityAliasInvalid, diag.Location{Source: name}, msg).WithArg("reason", msg)
}

func ambiguous(name string, targets map[ID][]ID) *diag.Diagnostic {
	var msgs []string
	for _, old := range slices.SortedFunc(maps.Keys(targets), compareIDs) {
		next := targets[old]
		if len(next) < 2 {
			continue
		}
		slices.SortFunc(next, compareIDs)
		names := make([]string, len(next))
		for i, n := range next {
			names[i] = "'" + n.String() + "'"
		}
		msgs = append(msgs, fmt.Sprintf("identity '%s' is renamed to more than one target: %s", old, strings.Join(names, ", ")))
	}
	if len(msgs) == 0 {
		return nil
	}
	return diag.NewError(diag.IdentityAliasAmbiguous, diag.Location{Source: name}, strings.Join(msgs, "; ")).
		WithArg("count", fmt.Sprint(len(msgs)))
}

func build(name string, targets map[ID][]ID) (*AliasGraph, error) {
	renames := make(map[ID]ID, len(targets))
	edges := make([]dag.Edge, 0, len(targets))
	byName := make(map[string]ID, len(targets)*2)
	for old, next := range targets {
		renames[old] = next[0]
		edges = append(edges, dag.Edge{From: old.String(), To: next[0].String()})
		byName[old.String()], byName[next[0].String()] = old, next[0]
	}

	idx := dag.BuildIndex(edges)
	g := dag.BuildGraph(idx, edges)
	topo := dag.ToposortKahn(g)
	if topo.Cyclic {
		for _, start := range topo.Cycles {
			cycle := dag.CycleFrom(g, topo, start)
			if cycle == nil {
				continue
			}
			chain := strings.Join(idx.Names(cycle), " -> ")
			return nil, diag.Errorf(diag.IdentityAliasCycle, diag.Location{Source: name},
				"alias graph contains a cycle: %s", chain).WithArg("cycle", chain)
		}
	}

	// Reverse topological order visits every target before its sources.
	canonical := make(map[ID]ID, len(renames))
	for i := len(topo.Order) - 1; i >= 0; i-- {
		id := byName[idx.IDToName[int(topo.Order[i])]]
		next, ok := renames[id]
		if !ok {
			continue
		}
		if end, chained := canonical[next]; chained {
			canonical[id] = end
		} else {
			canonical[id] = next
		}
	}
	return &AliasGraph{Source: name, renames: renames, canonical: canonical}, nil
}

func compareIDs(a, b ID) int {
	return strings.Compare(a.String(), b.String())
}

// Resolve returns the canonical identity of id. Identities that were
// never renamed resolve to themselves.
func (g *AliasGraph) Resolve(id ID) ID {
	id.Path = NormalizePath(id.Path)
	if g != nil {
		if end, ok := g.canonical[id]; ok {
			return end
		}
	}
	return id
}

// Deprecated reports whether id has been renamed.
func (g *AliasGraph) Deprecated(id ID) bool {
	if g == nil {
		return false
	}
	_, ok := g.renames[ID{Path: NormalizePath(id.Path), Theorem: id.Theorem}]
	return ok
}

// AliasesOf lists every deprecated identity that resolves to id, sorted.
func (g *AliasGraph) AliasesOf(id ID) []ID {
	if g == nil {
		return nil
	}
	id = g.Resolve(id)
	var out []ID
	for old, end := range g.canonical {
		if end == id {
			out = append(out, old)
		}
	}
	slices.SortFunc(out, compareIDs)
	return out
}

// Len is the number of deprecated identities.
func (g *AliasGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.renames)
}
