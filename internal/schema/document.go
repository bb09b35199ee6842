// Package schema is the in-memory model of theorem documents.
//
// Every author-written scalar is a Text (or another source.Spanned value)
// so later stages can point diagnostics at the exact line and column.
// Documents are built once by the loader and treated as read-only after.
package schema

import (
	"theoremc/internal/source"
)

// Text is a string read from a document together with its position.
type Text = source.Spanned[string]

// Document is one theorem: one YAML sub-document of a .theorem file.
type Document struct {
	Source string     // file the document was read from
	Index  int        // 0-based position within the file
	Pos    source.Pos // start of the document's root mapping

	Schema   *source.Spanned[uint32]
	Theorem  Text
	About    Text
	Tags     []Text
	Given    []Text
	Forall   []Variable
	Assume   []Assumption
	Witness  []Witness
	Let      []LetBinding
	Do       []Step
	Prove    []Assertion
	Evidence Evidence
}

// Variable is one symbolic Forall declaration.
type Variable struct {
	Name Text
	Type Text
}

// Clause pairs an expression with the author's rationale for it.
type Clause struct {
	Expr    Text
	Because Text
	Pos     source.Pos
}

type (
	// Assumption is an `Assume` entry: {expr, because}.
	Assumption = Clause
	// Assertion is a `Prove` entry: {assert, because}.
	Assertion = Clause
	// Witness is a `Witness` entry: {cover, because}.
	Witness = Clause
)

// LetBinding names the result of an action run before the Do steps.
// The loader accepts any step shape; validation rejects `maybe`.
type LetBinding struct {
	Name Text
	Step Step
}

// Name returns the theorem identifier.
func (d *Document) Name() string {
	return d.Theorem.Value
}

// Key is the batch-unique `{source}#{theorem}` key.
func (d *Document) Key() string {
	return d.Source + "#" + d.Theorem.Value
}

// Actions visits every ActionCall of the document in source order:
// Let bindings first, then Do steps, descending into maybe blocks.
func (d *Document) Actions(visit func(*ActionCall)) {
	for i := range d.Let {
		d.Let[i].Step.walk(visit)
	}
	for i := range d.Do {
		d.Do[i].walk(visit)
	}
}
