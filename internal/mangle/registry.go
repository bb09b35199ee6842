package mangle

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"theoremc/internal/diag"
	"theoremc/internal/schema"
	"theoremc/internal/source"
)

// Site is where a canonical name was introduced.
type Site struct {
	Source  string
	Pos     source.Pos
	Theorem string // owning theorem, if any
}

func (s Site) location() diag.Location {
	return diag.Location{Source: s.Source, Line: s.Pos.Line, Column: s.Pos.Col}
}

func compareSites(a, b Site) int {
	return cmp.Or(
		strings.Compare(a.Source, b.Source),
		cmp.Compare(a.Pos.Doc, b.Pos.Doc),
		cmp.Compare(a.Pos.Line, b.Pos.Line),
		cmp.Compare(a.Pos.Col, b.Pos.Col),
	)
}

type theoremEntry struct {
	source  string
	theorem string
	site    Site
}

// Registry accumulates every canonical name of a batch. It is owned by a
// single caller; Finish runs all collision checks at once.
type Registry struct {
	declared   map[string][]Site
	referenced map[string]Site // first reference wins
	theorems   map[string][]theoremEntry
	modules    map[string]Site
}

func NewRegistry() *Registry {
	return &Registry{
		declared:   make(map[string][]Site),
		referenced: make(map[string]Site),
		theorems:   make(map[string][]theoremEntry),
		modules:    make(map[string]Site),
	}
}

// DeclareAction records an action definition. Declaring the same
// canonical name twice is a collision.
func (r *Registry) DeclareAction(name string, site Site) {
	r.declared[name] = append(r.declared[name], site)
}

// ReferenceAction records a use of an action. Repeated references to one
// name are expected and deduplicated.
func (r *Registry) ReferenceAction(name string, site Site) {
	if _, ok := r.referenced[name]; !ok {
		r.referenced[name] = site
	}
}

// AddModule records a source file even if it contributes no theorem.
// Every distinct spelling of a path is its own module.
func (r *Registry) AddModule(path string) {
	if _, ok := r.modules[path]; !ok {
		r.modules[path] = Site{Source: path}
	}
}

// AddTheorem records doc's theorem key, its module and every action it
// references.
func (r *Registry) AddTheorem(doc *schema.Document) {
	r.AddModule(doc.Source)
	key := doc.Key()
	site := Site{Source: doc.Source, Pos: doc.Theorem.Pos, Theorem: doc.Name()}
	r.theorems[key] = append(r.theorems[key], theoremEntry{source: doc.Source, theorem: doc.Name(), site: site})
	doc.Actions(func(c *schema.ActionCall) {
		r.ReferenceAction(c.Action.Value, Site{Source: doc.Source, Pos: c.Action.Pos, Theorem: doc.Name()})
	})
}

// collision is one set of sources that map to the same symbol.
type collision struct {
	msg   string
	key   string
	sites []Site
}

// Finish checks for every kind of collision and either returns the
// complete symbol table or one diagnostic listing all offending sources.
func (r *Registry) Finish() (*SymbolTable, *diag.Diagnostic) {
	var found []collision
	found = append(found, r.duplicateDeclarations()...)
	found = append(found, r.duplicateActionIdents()...)
	found = append(found, r.duplicateTheoremKeys()...)
	found = append(found, r.duplicateModuleIdents()...)
	found = append(found, r.duplicateHarnessIdents()...)
	if len(found) > 0 {
		return nil, collisionDiagnostic(found)
	}
	return r.table(), nil
}

func (r *Registry) actionNames() []string {
	names := slices.Collect(maps.Keys(r.referenced))
	for name := range r.declared {
		if _, ok := r.referenced[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (r *Registry) actionSite(name string) Site {
	if sites := r.declared[name]; len(sites) > 0 {
		return sites[0]
	}
	return r.referenced[name]
}

func (r *Registry) duplicateDeclarations() []collision {
	var out []collision
	for _, name := range slices.Sorted(maps.Keys(r.declared)) {
		sites := r.declared[name]
		if len(sites) < 2 {
			continue
		}
		out = append(out, collision{
			msg:   fmt.Sprintf("action '%s' is declared %d times", name, len(sites)),
			key:   name,
			sites: slices.SortedFunc(slices.Values(sites), compareSites),
		})
	}
	return out
}

func (r *Registry) duplicateActionIdents() []collision {
	byIdent := make(map[string][]string)
	for _, name := range r.actionNames() {
		id := ActionIdent(name)
		byIdent[id] = append(byIdent[id], name)
	}
	var out []collision
	for _, id := range slices.Sorted(maps.Keys(byIdent)) {
		names := byIdent[id]
		if len(names) < 2 {
			continue
		}
		sites := make([]Site, len(names))
		for i, n := range names {
			sites[i] = r.actionSite(n)
		}
		out = append(out, collision{
			msg:   fmt.Sprintf("action identifier '%s' is generated by %s", id, quoteList(names)),
			key:   id,
			sites: sites,
		})
	}
	return out
}

func (r *Registry) duplicateTheoremKeys() []collision {
	var out []collision
	for _, key := range slices.Sorted(maps.Keys(r.theorems)) {
		entries := r.theorems[key]
		if len(entries) < 2 {
			continue
		}
		sites := make([]Site, len(entries))
		for i, e := range entries {
			sites[i] = e.site
		}
		slices.SortFunc(sites, compareSites)
		out = append(out, collision{
			msg:   fmt.Sprintf("theorem key '%s' is defined %d times", key, len(entries)),
			key:   key,
			sites: sites,
		})
	}
	return out
}

func (r *Registry) duplicateModuleIdents() []collision {
	byIdent := make(map[string][]string)
	for _, path := range slices.Sorted(maps.Keys(r.modules)) {
		id := ModuleIdent(path)
		byIdent[id] = append(byIdent[id], path)
	}
	var out []collision
	for _, id := range slices.Sorted(maps.Keys(byIdent)) {
		paths := byIdent[id]
		if len(paths) < 2 {
			continue
		}
		sites := make([]Site, len(paths))
		for i, p := range paths {
			sites[i] = r.modules[p]
		}
		out = append(out, collision{
			msg:   fmt.Sprintf("module identifier '%s' is generated by %s", id, quoteList(paths)),
			key:   id,
			sites: sites,
		})
	}
	return out
}

// duplicateHarnessIdents catches distinct theorem keys whose harnesses
// would share one generated name.
func (r *Registry) duplicateHarnessIdents() []collision {
	byIdent := make(map[string][]string)
	for _, key := range slices.Sorted(maps.Keys(r.theorems)) {
		e := r.theorems[key][0]
		id := ModuleIdent(e.source) + "::" + HarnessIdent(e.source, e.theorem)
		byIdent[id] = append(byIdent[id], key)
	}
	var out []collision
	for _, id := range slices.Sorted(maps.Keys(byIdent)) {
		owners := byIdent[id]
		if len(owners) < 2 {
			continue
		}
		sites := make([]Site, len(owners))
		for i, k := range owners {
			sites[i] = r.theorems[k][0].site
		}
		out = append(out, collision{
			msg:   fmt.Sprintf("harness identifier '%s' is generated by %s", id, quoteList(owners)),
			key:   id,
			sites: sites,
		})
	}
	return out
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

func collisionDiagnostic(found []collision) *diag.Diagnostic {
	msgs := make([]string, len(found))
	for i, c := range found {
		msgs[i] = c.msg
	}
	msg := msgs[0]
	if len(found) > 1 {
		msg = fmt.Sprintf("%d symbol collisions: %s", len(found), strings.Join(msgs, "; "))
	}
	d := diag.NewError(diag.MangleCollision, found[0].sites[0].location(), msg).
		WithArg("count", strconv.Itoa(len(found))).
		WithArg("symbols", strings.Join(keys(found), ", "))
	for _, c := range found {
		for _, s := range c.sites {
			note := c.key
			if s.Theorem != "" {
				note = fmt.Sprintf("%s (theorem '%s')", c.key, s.Theorem)
			}
			d.WithNote(s.location(), note)
		}
	}
	return d
}

func keys(found []collision) []string {
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.key
	}
	return out
}

func (r *Registry) table() *SymbolTable {
	t := &SymbolTable{Schema: tableSchemaVersion}
	for _, name := range r.actionNames() {
		t.Actions = append(t.Actions, ActionSymbol{Name: name, Ident: ActionIdent(name)})
	}
	for _, path := range slices.Sorted(maps.Keys(r.modules)) {
		src := r.modules[path].Source
		t.Modules = append(t.Modules, ModuleSymbol{Path: src, Slug: ModuleSlug(src), Ident: ModuleIdent(src)})
	}
	for _, key := range slices.Sorted(maps.Keys(r.theorems)) {
		e := r.theorems[key][0]
		t.Harnesses = append(t.Harnesses, HarnessSymbol{
			Key:     key,
			Source:  e.source,
			Theorem: e.theorem,
			Module:  ModuleIdent(e.source),
			Ident:   HarnessIdent(e.source, e.theorem),
		})
	}
	return t
}
