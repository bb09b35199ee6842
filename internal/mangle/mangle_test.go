package mangle_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theoremc/internal/diag"
	"theoremc/internal/loader"
	"theoremc/internal/mangle"
	"theoremc/internal/source"
)

var hex12 = regexp.MustCompile(`^[0-9a-f]{12}$`)

func TestHash12(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc", mangle.Hash12(""))
	assert.Equal(t, "ba7816bf8f01", mangle.Hash12("abc"))
	assert.Regexp(t, hex12, mangle.Hash12("account.deposit"))
}

func TestActionIdent(t *testing.T) {
	id := mangle.ActionIdent("hnsw.attach_node")
	prefix := "hnsw__attach_unode__h"
	require.True(t, strings.HasPrefix(id, prefix), id)
	assert.Regexp(t, hex12, strings.TrimPrefix(id, prefix))
	assert.Equal(t, id, mangle.ActionIdent("hnsw.attach_node"))

	assert.Equal(t, "a__b_uc", mangle.ActionSlug("a.b_c"))
	assert.Equal(t, "a__bxc", mangle.ActionSlug("a.bxc"))
	assert.NotEqual(t, mangle.ActionIdent("a.b_c"), mangle.ActionIdent("a.bxc"))
	// `a.b__c` and `a.b.c` would meet without escaping.
	assert.NotEqual(t, mangle.ActionSlug("a.b__c"), mangle.ActionSlug("a.b.c"))
}

func TestModuleSlug(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/b.theorem", "a__b_theorem"},
		{`a\b.theorem`, "a__b_theorem"},
		{"./theorems/Account-Ops.theorem", "theorems__account_ops_theorem"},
		{"/abs//dir/x.theorem", "abs__dir__x_theorem"},
		{"9lives.theorem", "_9lives_theorem"},
		{"a__b/c", "a_b__c"},
		{"./_a.theorem", "a_theorem"},
		{"", "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mangle.ModuleSlug(tt.path), tt.path)
	}
}

func TestModuleIdentSeparatorsAndCase(t *testing.T) {
	assert.Equal(t, mangle.ModuleSlug("a/b.theorem"), mangle.ModuleSlug(`a\b.theorem`))
	assert.NotEqual(t, mangle.ModuleIdent("a/b.theorem"), mangle.ModuleIdent(`a\b.theorem`))
	assert.NotEqual(t, mangle.HarnessIdent("a/b.theorem", "T"), mangle.HarnessIdent(`a\b.theorem`, "T"))

	upper, lower := mangle.ModuleIdent("Acct.theorem"), mangle.ModuleIdent("acct.theorem")
	assert.Equal(t, mangle.ModuleSlug("Acct.theorem"), mangle.ModuleSlug("acct.theorem"))
	assert.NotEqual(t, upper, lower)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"DepositIncreasesBalance": "deposit_increases_balance",
		"already_snake":           "already_snake",
		"HTTPServerStarts":        "http_server_starts",
		"parseHTTP2Request":       "parse_http2_request",
		"X":                       "x",
		"Has_Underscore":          "has_underscore",
	}
	for in, want := range tests {
		assert.Equal(t, want, mangle.SnakeCase(in), in)
	}
}

func TestHarnessIdentAndPath(t *testing.T) {
	id := mangle.HarnessIdent("a/b.theorem", "DepositWorks")
	require.True(t, strings.HasPrefix(id, "deposit_works__h"), id)
	assert.Regexp(t, hex12, strings.TrimPrefix(id, "deposit_works__h"))
	assert.NotEqual(t, id, mangle.HarnessIdent("a/c.theorem", "DepositWorks"))

	path := mangle.HarnessPath("a/b.theorem", "DepositWorks", "kani")
	assert.Equal(t, mangle.ModuleIdent("a/b.theorem")+"::kani::"+id, path)
}

func site(src string, line uint32) mangle.Site {
	return mangle.Site{Source: src, Pos: source.Pos{Line: line, Col: 1}}
}

func TestRegistryReferencesAreDeduplicated(t *testing.T) {
	r := mangle.NewRegistry()
	r.ReferenceAction("account.deposit", site("a.theorem", 3))
	r.ReferenceAction("account.deposit", site("b.theorem", 9))
	r.DeclareAction("account.open", site("actions.toml", 1))
	r.ReferenceAction("account.open", site("a.theorem", 5))

	table, d := r.Finish()
	require.Nil(t, d)
	require.Len(t, table.Actions, 2)
	assert.Equal(t, "account.deposit", table.Actions[0].Name)
	id, ok := table.Action("account.open")
	require.True(t, ok)
	assert.Equal(t, mangle.ActionIdent("account.open"), id)
}

func TestRegistryReportsEveryCollision(t *testing.T) {
	r := mangle.NewRegistry()
	r.DeclareAction("account.deposit", site("x.theorem", 1))
	r.DeclareAction("account.deposit", site("y.theorem", 2))
	r.DeclareAction("account.deposit", site("z.theorem", 3))
	r.DeclareAction("account.open", site("x.theorem", 4))
	r.DeclareAction("account.open", site("x.theorem", 5))

	table, d := r.Finish()
	require.Nil(t, table)
	require.NotNil(t, d)
	assert.Equal(t, diag.MangleCollision, d.Code)
	assert.Equal(t, "x.theorem", d.Location.Source)
	assert.Contains(t, d.Message, "2 symbol collisions")
	assert.Contains(t, d.Message, "action 'account.deposit' is declared 3 times")
	assert.Contains(t, d.Message, "action 'account.open' is declared 2 times")
	assert.Len(t, d.Notes, 5)
	count, _ := d.Arg("count")
	assert.Equal(t, "2", count)
}

const fileA = `Theorem: DepositWorks
About: deposit works
Do:
  - call:
      action: account.deposit
      args: {}
Prove:
  - assert: 'true'
    because: trivially
Evidence:
  kani: {unwind: 1, expect: SUCCESS}
Witness:
  - cover: 'true'
    because: reachable
---
Theorem: WithdrawWorks
About: withdraw works
Do:
  - call:
      action: account.withdraw_all
      args: {}
  - call:
      action: account.deposit
      args: {}
Prove:
  - assert: 'true'
    because: trivially
Evidence:
  kani: {unwind: 1, expect: SUCCESS}
Witness:
  - cover: 'true'
    because: reachable
`

func loadFile(t *testing.T, path, text string) mangle.File {
	t.Helper()
	docs, err := loader.Load(path, []byte(text))
	require.NoError(t, err)
	return mangle.File{Path: path, Docs: docs}
}

func TestBatch(t *testing.T) {
	files := []mangle.File{
		loadFile(t, "theorems/acct.theorem", fileA),
		{Path: "theorems/empty.theorem"},
	}
	table, d := mangle.Batch(files)
	require.Nil(t, d)

	want := []mangle.ActionSymbol{
		{Name: "account.deposit", Ident: mangle.ActionIdent("account.deposit")},
		{Name: "account.withdraw_all", Ident: mangle.ActionIdent("account.withdraw_all")},
	}
	if diff := cmp.Diff(want, table.Actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, table.Modules, 2)
	require.Len(t, table.Harnesses, 2)

	h, ok := table.Harness("theorems/acct.theorem#WithdrawWorks")
	require.True(t, ok)
	assert.Equal(t, mangle.HarnessIdent("theorems/acct.theorem", "WithdrawWorks"), h.Ident)
	assert.Equal(t, mangle.HarnessPath("theorems/acct.theorem", "WithdrawWorks", "kani"), h.Path("kani"))
}

func TestBatchDuplicateTheoremKeys(t *testing.T) {
	dup := fileA[:strings.Index(fileA, "---")]
	files := []mangle.File{loadFile(t, "acct.theorem", fileA+"---\n"+dup)}
	_, d := mangle.Batch(files)
	require.NotNil(t, d)
	assert.Equal(t, "theorem key 'acct.theorem#DepositWorks' is defined 2 times", d.Message)
	require.Len(t, d.Notes, 2)
	assert.Equal(t, uint32(1), d.Notes[0].Location.Line)
	assert.Contains(t, d.Notes[1].Msg, "theorem 'DepositWorks'")
}

func TestBatchSameSlugDistinctFiles(t *testing.T) {
	files := []mangle.File{
		loadFile(t, "Acct.theorem", fileA),
		loadFile(t, "acct.theorem", fileA),
	}
	table, d := mangle.Batch(files)
	require.Nil(t, d)
	require.Len(t, table.Modules, 2)
	assert.Equal(t, table.Modules[0].Slug, table.Modules[1].Slug)
	assert.NotEqual(t, table.Modules[0].Ident, table.Modules[1].Ident)
}

func TestBatchSeparatorSpellingsStayDistinct(t *testing.T) {
	files := []mangle.File{
		loadFile(t, "a/b.theorem", fileA),
		loadFile(t, `a\b.theorem`, fileA),
	}
	table, d := mangle.Batch(files)
	require.Nil(t, d)
	require.Len(t, table.Modules, 2)
	assert.Equal(t, table.Modules[0].Slug, table.Modules[1].Slug)
	assert.NotEqual(t, table.Modules[0].Ident, table.Modules[1].Ident)

	slash, ok := table.Harness("a/b.theorem#DepositWorks")
	require.True(t, ok)
	back, ok := table.Harness(`a\b.theorem#DepositWorks`)
	require.True(t, ok)
	assert.NotEqual(t, slash.Module, back.Module)
	assert.NotEqual(t, slash.Ident, back.Ident)
}

func TestSymbolTableEncoding(t *testing.T) {
	table, d := mangle.Batch([]mangle.File{loadFile(t, "acct.theorem", fileA)})
	require.Nil(t, d)

	var bin bytes.Buffer
	require.NoError(t, table.EncodeMsgpack(&bin))
	back, err := mangle.DecodeMsgpack(&bin)
	require.NoError(t, err)
	if diff := cmp.Diff(table, back); diff != "" {
		t.Fatalf("msgpack round trip (-want +got):\n%s", diff)
	}

	var js bytes.Buffer
	require.NoError(t, table.EncodeJSON(&js))
	assert.Contains(t, js.String(), `"name": "account.deposit"`)
	assert.Contains(t, js.String(), `"schema": 1`)
}

func TestDecodeMsgpackRejectsOtherSchema(t *testing.T) {
	var bin bytes.Buffer
	require.NoError(t, (&mangle.SymbolTable{Schema: 99}).EncodeMsgpack(&bin))
	_, err := mangle.DecodeMsgpack(&bin)
	assert.ErrorContains(t, err, "schema 99")
}
