package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theoremc/internal/source"
)

func TestRenderCanonicalLine(t *testing.T) {
	d := NewError(SchemaValidationFailure, Location{Source: "a/b.theorem", Line: 4, Column: 3},
		"validation failed for theorem 'T': About must be non-empty after trimming")

	assert.Equal(t,
		"schema.validation_failure | a/b.theorem:4:3 | validation failed for theorem 'T': About must be non-empty after trimming",
		d.Render())
	assert.Equal(t, d.Render(), d.Error())
}

func TestRenderUnknownLocationAndMultilineMessage(t *testing.T) {
	d := NewError(MangleCollision, Location{Source: "<batch>"}, "two\nlines")
	assert.Equal(t, "mangle.collision | <batch> | two lines", d.Render())
}

func TestDiagnosticTravelsAsError(t *testing.T) {
	var err error = Errorf(SchemaParseFailure, Location{Source: "x", Line: 1, Column: 1}, "bad %s", "input")
	wrapped := fmt.Errorf("loading: %w", err)

	var d *Diagnostic
	require.True(t, errors.As(wrapped, &d))
	assert.Equal(t, SchemaParseFailure, d.Code)
	assert.Equal(t, "bad input", d.Message)
}

func TestArgsAndLocalizer(t *testing.T) {
	d := NewError(SchemaInvalidIdentifier, Location{Source: "s", Line: 2, Column: 5}, "invalid identifier 'fn'").
		WithArg("identifier", "fn").
		WithArg("reason", "reserved")

	v, ok := d.Arg("identifier")
	require.True(t, ok)
	assert.Equal(t, "fn", v)
	_, ok = d.Arg("missing")
	assert.False(t, ok)

	loc := LocalizerFunc(func(code Code, args []Arg) (string, bool) {
		if code != SchemaInvalidIdentifier {
			return "", false
		}
		return "identificador no valido: " + args[0].Value, true
	})
	assert.Equal(t, "schema.invalid_identifier | s:2:5 | identificador no valido: fn", d.RenderWith(loc))

	other := NewError(SchemaParseFailure, Location{Source: "s"}, "fallback")
	assert.Equal(t, "fallback", other.LocalizedMessage(loc))
	assert.Equal(t, "fallback", other.LocalizedMessage(nil))
}

func TestCodeIDsAreUniqueAndRoundTrip(t *testing.T) {
	seen := map[string]Code{}
	for c, id := range codeIDs {
		if prev, dup := seen[id]; dup {
			t.Fatalf("codes %d and %d share id %q", prev, c, id)
		}
		seen[id] = c
		back, ok := ParseCode(id)
		require.True(t, ok, id)
		assert.Equal(t, c, back)
		_, hasTitle := codeDescription[c]
		assert.True(t, hasTitle, "missing title for %s", id)
	}
	assert.Equal(t, "schema.parse_failure", SchemaParseFailure.ID())
	assert.Equal(t, "unknown.9999", Code(9999).ID())
}

func TestBagSortDedupAndLimit(t *testing.T) {
	b := NewBag(3)
	b.Add(NewError(SchemaParseFailure, Location{Source: "b", Line: 1, Column: 1}, "x"))
	b.Add(NewError(SchemaParseFailure, Location{Source: "a", Line: 9, Column: 1}, "y"))
	b.Add(NewError(SchemaParseFailure, Location{Source: "a", Line: 2, Column: 7}, "z"))
	assert.False(t, b.Add(NewError(SchemaParseFailure, Location{Source: "c"}, "over")))
	assert.True(t, b.HasErrors())

	b.Sort()
	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"z", "y", "x"}, got)

	other := NewBag(2)
	other.Add(NewError(SchemaParseFailure, Location{Source: "a", Line: 2, Column: 7}, "z"))
	b.Merge(other)
	require.Equal(t, 4, b.Len())
	b.Dedup()
	assert.Equal(t, 3, b.Len())
}

func TestFormatLinesWithNotes(t *testing.T) {
	d := NewError(MangleCollision, Location{Source: "<batch>"}, "duplicate theorem key 'a.theorem#T'").
		WithNote(Location{Source: "a.theorem", Line: 1, Column: 1}, "first definition").
		WithNote(Location{Source: "a.theorem", Line: 9, Column: 1}, "second definition")

	want := "mangle.collision | <batch> | duplicate theorem key 'a.theorem#T'\n" +
		"  mangle.collision | a.theorem:1:1 | note: first definition\n" +
		"  mangle.collision | a.theorem:9:1 | note: second definition"
	assert.Equal(t, want, FormatLines([]*Diagnostic{d}, true))
	assert.Equal(t, "mangle.collision | <batch> | duplicate theorem key 'a.theorem#T'", FormatLines([]*Diagnostic{d}, false))
}

func TestFirstErrorAndDedupReporter(t *testing.T) {
	first := &FirstError{}
	r := NewDedupReporter(first)
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexBadNumber, SevWarning, sp, "ignored warning")
	r.Report(SynUnexpectedToken, SevError, sp, "unexpected token")
	r.Report(SynExpectExpression, SevError, sp, "later")

	require.True(t, first.Found())
	assert.Equal(t, SynUnexpectedToken, first.Code)
	assert.Equal(t, "unexpected token", first.Msg)

	bag := NewBag(10)
	fs := source.NewFileSet()
	id := fs.AddVirtual("<expr>", []byte("a\nbc"))
	br := NewDedupReporter(BagReporter{Bag: bag, Files: fs})
	br.Report(SynUnexpectedToken, SevError, source.Span{File: id, Start: 3, End: 4}, "boom")
	br.Report(SynUnexpectedToken, SevError, source.Span{File: id, Start: 3, End: 4}, "boom")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, Location{Source: "<expr>", Line: 2, Column: 2}, bag.Items()[0].Location)
}

func TestSeverityLabels(t *testing.T) {
	assert.Equal(t, "info", SevInfo.String())
	assert.Equal(t, "warning", SevWarning.String())
	assert.Equal(t, "error", SevError.String())
	assert.Equal(t, "unknown", Severity(9).String())
	assert.False(t, SevWarning.Fails())
	assert.True(t, SevError.Fails())
}
