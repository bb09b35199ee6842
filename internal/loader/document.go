package loader

import (
	"strings"

	"gopkg.in/yaml.v3"

	"theoremc/internal/schema"
)

// Top-level section names. Each also accepts its all-lowercase spelling,
// and nothing else.
const (
	keySchema   = "Schema"
	keyTheorem  = "Theorem"
	keyAbout    = "About"
	keyTags     = "Tags"
	keyGiven    = "Given"
	keyForall   = "Forall"
	keyAssume   = "Assume"
	keyWitness  = "Witness"
	keyLet      = "Let"
	keyDo       = "Do"
	keyProve    = "Prove"
	keyEvidence = "Evidence"
)

var sectionOrder = []string{
	keySchema, keyTheorem, keyAbout, keyTags, keyGiven, keyForall,
	keyAssume, keyWitness, keyLet, keyDo, keyProve, keyEvidence,
}

var requiredSections = []string{keyTheorem, keyAbout, keyProve, keyEvidence}

// sectionAliases maps every accepted spelling to its canonical name.
var sectionAliases = func() map[string]string {
	m := make(map[string]string, 2*len(sectionOrder))
	for _, name := range sectionOrder {
		m[name] = name
		m[strings.ToLower(name)] = name
	}
	return m
}()

// CanonicalSection resolves a top-level key through the alias table.
func CanonicalSection(key string) (string, bool) {
	name, ok := sectionAliases[key]
	return name, ok
}

func (d *decoder) document(root *yaml.Node) (schema.Document, error) {
	doc := schema.Document{Pos: d.pos(root)}
	fields, err := d.mapping(root, "document")
	if err != nil {
		return doc, err
	}

	seen := make(map[string]*yaml.Node, len(fields))
	for _, f := range fields {
		name, ok := CanonicalSection(f.name)
		if !ok {
			return doc, d.fail(f.key, "unknown field `%s`, expected %s", f.name, oneOf(sectionOrder))
		}
		if _, dup := seen[name]; dup {
			return doc, d.fail(f.key, "duplicate field `%s`", name)
		}
		seen[name] = f.key
		if err := d.section(&doc, name, f.val); err != nil {
			return doc, err
		}
	}
	for _, name := range requiredSections {
		if _, ok := seen[name]; !ok {
			return doc, d.fail(root, "missing field `%s`", name)
		}
	}
	return doc, nil
}

func (d *decoder) section(doc *schema.Document, name string, n *yaml.Node) error {
	var err error
	switch name {
	case keySchema:
		v, verr := d.u32(n, name)
		if verr != nil {
			return verr
		}
		doc.Schema = &v
	case keyTheorem:
		doc.Theorem, err = d.identifier(n, name)
	case keyAbout:
		doc.About, err = d.str(n, name)
	case keyTags:
		doc.Tags, err = d.strList(n, name)
	case keyGiven:
		doc.Given, err = d.strList(n, name)
	case keyForall:
		doc.Forall, err = d.forall(n)
	case keyAssume:
		doc.Assume, err = d.clauses(n, name, "expr")
	case keyWitness:
		doc.Witness, err = d.clauses(n, name, "cover")
	case keyLet:
		doc.Let, err = d.letBindings(n)
	case keyDo:
		doc.Do, err = d.steps(n, name)
	case keyProve:
		doc.Prove, err = d.clauses(n, name, "assert")
	case keyEvidence:
		doc.Evidence, err = d.evidence(n)
	}
	return err
}

func (d *decoder) forall(n *yaml.Node) ([]schema.Variable, error) {
	fields, err := d.mapping(n, keyForall)
	if err != nil {
		return nil, err
	}
	vars := make([]schema.Variable, 0, len(fields))
	for _, f := range fields {
		name, err := d.identifier(f.key, keyForall)
		if err != nil {
			return nil, err
		}
		ty, err := d.str(f.val, keyForall+"."+f.name)
		if err != nil {
			return nil, err
		}
		vars = append(vars, schema.Variable{Name: name, Type: ty})
	}
	return vars, nil
}

// clauses decodes a list of {<exprKey>, because} objects.
func (d *decoder) clauses(n *yaml.Node, section, exprKey string) ([]schema.Clause, error) {
	items, err := d.sequence(n, section)
	if err != nil {
		return nil, err
	}
	known := []string{exprKey, "because"}
	out := make([]schema.Clause, 0, len(items))
	for i, item := range items {
		what := section + "[" + itoa(i) + "]"
		fields, err := d.mapping(item, what)
		if err != nil {
			return nil, err
		}
		if err := d.strict(resolve(item), what, fields, known, known); err != nil {
			return nil, err
		}
		c := schema.Clause{Pos: d.pos(resolve(item))}
		for _, f := range fields {
			if f.name == exprKey {
				c.Expr, err = d.str(f.val, what+"."+exprKey)
			} else {
				c.Because, err = d.str(f.val, what+".because")
			}
			if err != nil {
				return nil, err
			}
		}
		out = append(out, c)
	}
	return out, nil
}
