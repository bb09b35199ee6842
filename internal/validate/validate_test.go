package validate_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theoremc/internal/diag"
	"theoremc/internal/loader"
	"theoremc/internal/schema"
	"theoremc/internal/validate"
)

const valid = `Theorem: Deposit
About: deposits grow the balance
Assume:
  - expr: amount < 1000
    because: bounded
Witness:
  - cover: amount > 0
    because: reachable
Let:
  acct:
    call:
      action: account.open
      args: {}
Do:
  - must:
      action: account.deposit
      args: {to: {ref: acct}}
Prove:
  - assert: acct.balance() >= amount
    because: deposit adds
Evidence:
  kani:
    unwind: 4
    expect: SUCCESS
`

const extraMaybe = `      args: {to: {ref: acct}}
  - maybe:
      because: fees may apply
      do:
        - call:
            action: account.charge_fee
            args: {}
`

func loadOne(t *testing.T, text string) *schema.Document {
	t.Helper()
	docs, err := loader.Load("t.theorem", []byte(text))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return &docs[0]
}

// mutate applies old→new replacements to the valid document.
func mutate(t *testing.T, pairs ...string) string {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	text := valid
	for i := 0; i < len(pairs); i += 2 {
		require.Contains(t, text, pairs[i])
		text = strings.Replace(text, pairs[i], pairs[i+1], 1)
	}
	return text
}

func failure(t *testing.T, text string) *diag.Diagnostic {
	t.Helper()
	err := validate.Document(loadOne(t, text))
	require.Error(t, err)
	var d *diag.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.SchemaValidationFailure, d.Code)
	return d
}

func TestValidDocumentPasses(t *testing.T) {
	assert.NoError(t, validate.Document(loadOne(t, valid)))
	assert.NoError(t, validate.Document(loadOne(t, mutate(t, "      args: {to: {ref: acct}}\n", extraMaybe))))
}

func TestDocumentFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		reason string
		check  string
		line   uint32 // 0 skips the location check
	}{
		{
			name:   "blank about",
			text:   mutate(t, "About: deposits grow the balance", "About: '   '"),
			reason: "About must be non-empty after trimming",
			check:  "non-empty",
			line:   2,
		},
		{
			name:   "empty prove",
			text:   mutate(t, "Prove:\n  - assert: acct.balance() >= amount\n    because: deposit adds\n", "Prove: []\n"),
			reason: "Prove section must contain at least one assertion",
			check:  "non-empty",
			line:   1,
		},
		{
			name:   "blank prove because",
			text:   mutate(t, "because: deposit adds", "because: ' '"),
			reason: "Prove assertion 1: because must be non-empty after trimming",
			check:  "non-empty",
			line:   20,
		},
		{
			name:   "blank assume expr",
			text:   mutate(t, "expr: amount < 1000", "expr: ''"),
			reason: "Assume constraint 1: expr must be non-empty after trimming",
			check:  "non-empty",
			line:   4,
		},
		{
			name:   "blank witness because",
			text:   mutate(t, "because: reachable", `because: "\t"`),
			reason: "Witness 1: because must be non-empty after trimming",
			check:  "non-empty",
			line:   8,
		},
		{
			name:   "prove checked before assume",
			text:   mutate(t, "expr: amount < 1000", "expr: ''", "assert: acct.balance() >= amount", "assert: ''"),
			reason: "Prove assertion 1: assert must be non-empty after trimming",
			check:  "non-empty",
			line:   19,
		},
		{
			name:   "assume statement",
			text:   mutate(t, "expr: amount < 1000", "expr: 'x = 1'"),
			reason: "Assume constraint 1: expr must be a single expression, not a statement or block",
			check:  "expressions",
			line:   4,
		},
		{
			name:   "witness block",
			text:   mutate(t, "cover: amount > 0", "cover: '{ amount > 0 }'"),
			reason: "Witness 1: cover must be a single expression, not a statement or block",
			check:  "expressions",
			line:   7,
		},
		{
			name:   "prove syntax error",
			text:   mutate(t, "assert: acct.balance() >= amount", "assert: 'a +'"),
			reason: "Prove assertion 1: assert is not a valid Rust expression: ",
			check:  "expressions",
			line:   19,
		},
		{
			name:   "assume checked before prove",
			text:   mutate(t, "expr: amount < 1000", "expr: 'loop {}'", "assert: acct.balance() >= amount", "assert: 'a +'"),
			reason: "Assume constraint 1: expr must be a single expression",
			check:  "expressions",
			line:   4,
		},
		{
			name:   "let maybe",
			text:   mutate(t, "    call:\n      action: account.open\n      args: {}\n", "    maybe:\n      because: sometimes\n      do:\n        - call: {action: account.open, args: {}}\n"),
			reason: "Let binding 'acct': maybe is not allowed in Let bindings (use call or must)",
			check:  "steps",
		},
		{
			name:   "let single segment",
			text:   mutate(t, "action: account.open", "action: open"),
			reason: "Let binding 'acct': action 'open' must have at least two dot-separated segments",
			check:  "steps",
			line:   12,
		},
		{
			name:   "do blank action",
			text:   mutate(t, "action: account.deposit", "action: '  '"),
			reason: "Do step 1: action must be non-empty after trimming",
			check:  "steps",
			line:   16,
		},
		{
			name:   "do keyword segment",
			text:   mutate(t, "action: account.deposit", "action: account.fn"),
			reason: "Do step 1: action 'account.fn' segment 2 ('fn') is a Rust reserved keyword",
			check:  "steps",
			line:   16,
		},
		{
			name:   "nested bad segment",
			text:   mutate(t, "      args: {to: {ref: acct}}\n", strings.Replace(extraMaybe, "account.charge_fee", "account.9fee", 1)),
			reason: "Do step 2: maybe.do step 1: action 'account.9fee' segment 2 ('9fee')",
			check:  "steps",
			line:   22,
		},
		{
			name:   "maybe blank because",
			text:   mutate(t, "      args: {to: {ref: acct}}\n", strings.Replace(extraMaybe, "fees may apply", "''", 1)),
			reason: "Do step 2: maybe.because must be non-empty after trimming",
			check:  "steps",
			line:   19,
		},
		{
			name: "maybe empty do",
			text: mutate(t, "      args: {to: {ref: acct}}\n",
				"      args: {to: {ref: acct}}\n  - maybe:\n      because: fees\n      do: []\n"),
			reason: "Do step 2: maybe.do must contain at least one step",
			check:  "steps",
			line:   19,
		},
		{
			name:   "no backend",
			text:   mutate(t, "Evidence:\n  kani:\n    unwind: 4\n    expect: SUCCESS\n", "Evidence: {}\n"),
			reason: "Evidence section must specify at least one backend (kani, verus, or stateright)",
			check:  "evidence",
			line:   21,
		},
		{
			name:   "zero unwind",
			text:   mutate(t, "unwind: 4", "unwind: 0"),
			reason: "Evidence.kani.unwind must be a positive integer (> 0)",
			check:  "evidence",
			line:   23,
		},
		{
			name:   "vacuous without rationale",
			text:   mutate(t, "expect: SUCCESS\n", "expect: SUCCESS\n    allow_vacuous: true\n"),
			reason: "vacuity_because is required when allow_vacuous is true",
			check:  "evidence",
			line:   25,
		},
		{
			name:   "blank rationale",
			text:   mutate(t, "expect: SUCCESS\n", "expect: SUCCESS\n    allow_vacuous: true\n    vacuity_because: ' '\n"),
			reason: "Evidence.kani.vacuity_because must be non-empty after trimming",
			check:  "evidence",
			line:   26,
		},
		{
			name:   "blank rationale while not vacuous",
			text:   mutate(t, "expect: SUCCESS\n", "expect: SUCCESS\n    vacuity_because: ''\n"),
			reason: "Evidence.kani.vacuity_because must be non-empty after trimming",
			check:  "evidence",
			line:   25,
		},
		{
			name:   "missing witness",
			text:   mutate(t, "Witness:\n  - cover: amount > 0\n    because: reachable\n", ""),
			reason: "Witness section must contain at least one witness when allow_vacuous is false (the default)",
			check:  "evidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := failure(t, tt.text)
			reason, ok := d.Arg("reason")
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(reason, tt.reason), "reason %q", reason)
			assert.Equal(t, fmt.Sprintf("validation failed for theorem 'Deposit': %s", reason), d.Message)
			check, _ := d.Arg("check")
			assert.Equal(t, tt.check, check)
			theorem, _ := d.Arg("theorem")
			assert.Equal(t, "Deposit", theorem)
			assert.Equal(t, "t.theorem", d.Location.Source)
			if tt.line != 0 {
				assert.Equal(t, tt.line, d.Location.Line)
			}
		})
	}
}

func TestExpressionFailureCarriesFormCode(t *testing.T) {
	d := failure(t, mutate(t, "expr: amount < 1000", "expr: 'x += 1'"))
	code, ok := d.Arg("expr_code")
	require.True(t, ok)
	assert.NotEmpty(t, code)
}

func TestVacuityOverrideAllowsMissingWitness(t *testing.T) {
	text := mutate(t,
		"Witness:\n  - cover: amount > 0\n    because: reachable\n", "",
		"expect: SUCCESS\n", "expect: SUCCESS\n    allow_vacuous: true\n    vacuity_because: the property is unconditional\n")
	assert.NoError(t, validate.Document(loadOne(t, text)))
}

func TestWitnessNotRequiredWithoutKani(t *testing.T) {
	text := mutate(t,
		"Witness:\n  - cover: amount > 0\n    because: reachable\n", "",
		"Evidence:\n  kani:\n    unwind: 4\n    expect: SUCCESS\n", "Evidence:\n  verus: {mode: default}\n")
	assert.NoError(t, validate.Document(loadOne(t, text)))
}

func TestCheckNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"non-empty", "expressions", "steps", "evidence"}, validate.CheckNames())
}

func TestBatchReportsLowestIndexFirst(t *testing.T) {
	good := *loadOne(t, valid)
	bad1 := *loadOne(t, mutate(t, "unwind: 4", "unwind: 0"))
	bad2 := *loadOne(t, mutate(t, "About: deposits grow the balance", "About: ''"))
	docs := []schema.Document{good, good, bad1, good, bad2, good}

	for _, jobs := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			got, err := validate.Batch(context.Background(), docs, validate.Options{Jobs: jobs})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, uint32(23), got[0].Location.Line)

			got, err = validate.Batch(context.Background(), docs, validate.Options{Jobs: jobs, Mode: validate.CollectAll})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, uint32(23), got[0].Location.Line)
			assert.Equal(t, uint32(2), got[1].Location.Line)
		})
	}
}

func TestBatchEmptyAndCancelled(t *testing.T) {
	got, err := validate.Batch(context.Background(), nil, validate.Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = validate.Batch(ctx, []schema.Document{*loadOne(t, valid)}, validate.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMode(t *testing.T) {
	for _, m := range []validate.Mode{validate.FailFast, validate.CollectAll} {
		got, err := validate.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := validate.ParseMode("sometimes")
	assert.Error(t, err)
}
