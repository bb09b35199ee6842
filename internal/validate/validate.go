// Package validate enforces the semantic rules a theorem document must meet
// after it has been decoded.
//
// Checks run in a fixed order and the first failing rule stops the
// pipeline for that document:
//
//  1. required text fields are non-blank and Prove is non-empty;
//  2. Assume, Prove and Witness hold single Rust expressions;
//  3. Let and Do steps are well formed, recursively through maybe blocks;
//  4. Evidence names a backend and its Kani settings are consistent.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"theoremc/internal/diag"
	"theoremc/internal/exprform"
	"theoremc/internal/schema"
	"theoremc/internal/source"
)

// failure is one broken rule: the human reason and where it applies.
type failure struct {
	reason string
	pos    source.Pos
	args   []diag.Arg
}

func fail(pos source.Pos, format string, args ...any) *failure {
	return &failure{reason: fmt.Sprintf(format, args...), pos: pos}
}

type check struct {
	name string
	run  func(doc *schema.Document) *failure
}

var pipeline = [...]check{
	{"non-empty", checkNonEmpty},
	{"expressions", checkExpressions},
	{"steps", checkSteps},
	{"evidence", checkEvidence},
}

// CheckNames lists the checks in the order Document runs them.
func CheckNames() []string {
	names := make([]string, len(pipeline))
	for i, c := range pipeline {
		names[i] = c.name
	}
	return names
}

// Document runs every check against doc and returns the first failure as
// a *diag.Diagnostic with code SchemaValidationFailure, or nil.
func Document(doc *schema.Document) error {
	if d := document(doc); d != nil {
		return d
	}
	return nil
}

func document(doc *schema.Document) *diag.Diagnostic {
	for _, c := range pipeline {
		f := c.run(doc)
		if f == nil {
			continue
		}
		pos := f.pos
		if pos.IsZero() {
			pos = doc.Theorem.Pos
		}
		loc := diag.Location{Source: doc.Source, Line: pos.Line, Column: pos.Col}
		d := diag.Errorf(diag.SchemaValidationFailure, loc,
			"validation failed for theorem '%s': %s", doc.Name(), f.reason).
			WithArg("theorem", doc.Name()).
			WithArg("reason", f.reason).
			WithArg("check", c.name)
		for _, a := range f.args {
			d.WithArg(a.Name, a.Value)
		}
		return d
	}
	return nil
}

func blank(t schema.Text) bool {
	return strings.TrimSpace(t.Value) == ""
}

func checkNonEmpty(doc *schema.Document) *failure {
	if blank(doc.About) {
		return fail(doc.About.Pos, "About must be non-empty after trimming")
	}
	if len(doc.Prove) == 0 {
		return fail(doc.Theorem.Pos, "Prove section must contain at least one assertion")
	}
	if f := nonEmptyClauses(doc.Prove, "Prove assertion", "assert"); f != nil {
		return f
	}
	if f := nonEmptyClauses(doc.Assume, "Assume constraint", "expr"); f != nil {
		return f
	}
	return nonEmptyClauses(doc.Witness, "Witness", "cover")
}

func nonEmptyClauses(clauses []schema.Clause, label, exprKey string) *failure {
	for i := range clauses {
		c := &clauses[i]
		if blank(c.Expr) {
			return fail(c.Expr.Pos, "%s %d: %s must be non-empty after trimming", label, i+1, exprKey)
		}
		if blank(c.Because) {
			return fail(c.Because.Pos, "%s %d: because must be non-empty after trimming", label, i+1)
		}
	}
	return nil
}

func checkExpressions(doc *schema.Document) *failure {
	if f := clauseExpressions(doc.Assume, "Assume constraint", "expr"); f != nil {
		return f
	}
	if f := clauseExpressions(doc.Prove, "Prove assertion", "assert"); f != nil {
		return f
	}
	return clauseExpressions(doc.Witness, "Witness", "cover")
}

func clauseExpressions(clauses []schema.Clause, label, exprKey string) *failure {
	for i := range clauses {
		c := &clauses[i]
		err := exprform.Check(strings.TrimSpace(c.Expr.Value))
		if err == nil {
			continue
		}
		f := fail(c.Expr.Pos, "%s %d: %s %s", label, i+1, exprKey, err.Error())
		var fe *exprform.Error
		if errors.As(err, &fe) {
			f.args = append(f.args, diag.Arg{Name: "expr_code", Value: fe.Code.ID()})
		}
		return f
	}
	return nil
}

func checkEvidence(doc *schema.Document) *failure {
	ev := &doc.Evidence
	if !ev.HasAnyBackend() {
		return fail(ev.Pos, "Evidence section must specify at least one backend (kani, verus, or stateright)")
	}
	if k := ev.Kani; k != nil {
		if k.Unwind.Value == 0 {
			return fail(k.Unwind.Pos, "Evidence.kani.unwind must be a positive integer (> 0)")
		}
		if k.Vacuous() && k.VacuityBecause == nil {
			return fail(k.AllowVacuous.Pos, "vacuity_because is required when allow_vacuous is true")
		}
		if k.VacuityBecause != nil && blank(*k.VacuityBecause) {
			return fail(k.VacuityBecause.Pos, "Evidence.kani.vacuity_because must be non-empty after trimming")
		}
		if !k.Vacuous() && len(doc.Witness) == 0 {
			return fail(k.Pos,
				"Witness section must contain at least one witness when allow_vacuous is false (the default)")
		}
	}
	return nil
}
