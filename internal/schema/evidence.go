package schema

import (
	"slices"

	"theoremc/internal/source"
)

// Evidence selects the verification backends for a theorem.
type Evidence struct {
	Pos        source.Pos
	Kani       *KaniEvidence
	Verus      *Value // opaque
	Stateright *Value // opaque
}

// HasAnyBackend reports whether at least one backend is configured.
func (e *Evidence) HasAnyBackend() bool {
	return e.Kani != nil || e.Verus != nil || e.Stateright != nil
}

// KaniEvidence configures the bounded model checker harness.
type KaniEvidence struct {
	Pos            source.Pos
	Unwind         source.Spanned[uint32]
	Expect         source.Spanned[Expectation]
	AllowVacuous   *source.Spanned[bool]
	VacuityBecause *Text
}

// Vacuous reports whether allow_vacuous is set to true.
func (k *KaniEvidence) Vacuous() bool {
	return k.AllowVacuous != nil && k.AllowVacuous.Value
}

// Expectation is the expected verification outcome.
type Expectation uint8

const (
	ExpectSuccess Expectation = iota
	ExpectFailure
	ExpectUnreachable
	ExpectUndetermined
)

var expectationNames = [...]string{
	ExpectSuccess:      "SUCCESS",
	ExpectFailure:      "FAILURE",
	ExpectUnreachable:  "UNREACHABLE",
	ExpectUndetermined: "UNDETERMINED",
}

func (e Expectation) String() string {
	if int(e) < len(expectationNames) {
		return expectationNames[e]
	}
	return "UNKNOWN"
}

// ParseExpectation maps the document spelling to an Expectation.
// Matching is exact: `success` is not accepted.
func ParseExpectation(s string) (Expectation, bool) {
	for i, name := range expectationNames {
		if name == s {
			return Expectation(i), true
		}
	}
	return 0, false
}

// ExpectationNames lists the accepted spellings in declaration order.
func ExpectationNames() []string {
	return slices.Clone(expectationNames[:])
}
