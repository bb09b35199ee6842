package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"theoremc/internal/identity"
	"theoremc/internal/mangle"
)

const validTheorem = `Theorem: Deposit
About: deposits grow the balance
Witness:
  - cover: amount > 0
    because: reachable
Do:
  - must:
      action: account.deposit
      args: {amount: 5}
Prove:
  - assert: balance > 0
    because: deposit adds
Evidence:
  kani:
    unwind: 4
    expect: SUCCESS
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, configFileName)
	writeFile(t, path, `[check]
jobs = 4
mode = "collect-all"
extensions = [".theorem", ".thm"]

[identity]
aliases = "renames.toml"

[output]
format = "short"
`)

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest error: %v", err)
	}
	if m.Config.Check.Jobs != 4 || m.Config.Check.Mode != "collect-all" || len(m.Config.Check.Extensions) != 2 {
		t.Fatalf("unexpected check config: %+v", m.Config.Check)
	}
	if !m.defined("check", "mode") || m.defined("output", "color") {
		t.Fatalf("IsDefined mismatch")
	}
	if got, want := m.resolve(m.Config.Identity.Aliases), filepath.Join(m.Root, "renames.toml"); got != want {
		t.Fatalf("resolve = %q, want %q", got, want)
	}
}

func TestLoadProjectConfigRejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[check]\nthreads = 2\n", "unknown keys: check.threads"},
		{"bad mode", "[check]\nmode = \"sometimes\"\n", "Check.Mode fails oneof"},
		{"negative jobs", "[check]\njobs = -1\n", "Check.Jobs fails gte=0"},
		{"bad color", "[output]\ncolor = \"rainbow\"\n", "Output.Color fails oneof"},
		{"syntax", "[check\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, tc.content)
			_, err := loadManifest(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("loadManifest error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = %q, %v, %v", path, ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want one in %s", path, root)
	}
}

func TestReadModes(t *testing.T) {
	if m, err := readUIMode(" ON "); err != nil || m != uiModeOn {
		t.Fatalf("readUIMode = %v, %v", m, err)
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
	if !shouldUseTUI(uiModeOn, 0) || shouldUseTUI(uiModeOff, 10) {
		t.Fatal("explicit ui modes ignored")
	}
	if m, err := readColorMode("never"); err != nil || m != colorOff {
		t.Fatalf("readColorMode = %v, %v", m, err)
	}
	if shouldUseColor(colorOff) || !shouldUseColor(colorOn) {
		t.Fatal("explicit color modes ignored")
	}
}

func TestRenderSymbolTable(t *testing.T) {
	table := &mangle.SymbolTable{
		Actions: []mangle.ActionSymbol{{Name: "account.deposit", Ident: "account__deposit__h0123456789ab"}},
		Harnesses: []mangle.HarnessSymbol{{
			Key: "a.theorem#Deposit", Module: "a__h111111111111", Ident: "deposit__h222222222222",
		}},
	}
	var buf bytes.Buffer
	if err := renderSymbolTable(&buf, table, "kani"); err != nil {
		t.Fatal(err)
	}
	want := "actions:\n  account.deposit  account__deposit__h0123456789ab\n" +
		"harnesses:\n  a.theorem#Deposit  a__h111111111111::kani::deposit__h222222222222\n"
	if buf.String() != want {
		t.Fatalf("renderSymbolTable =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := renderSymbolTable(&buf, &mangle.SymbolTable{}, "kani"); err != nil || buf.String() != "no symbols\n" {
		t.Fatalf("empty table = %q, %v", buf.String(), err)
	}
}

func TestRenderIdentities(t *testing.T) {
	entries := []identity.Entry{
		{ID: identity.Of("a.theorem", "New"), Canonical: identity.Of("a.theorem", "New"), Aliases: []identity.ID{identity.Of("a.theorem", "Old")}},
		{ID: identity.Of("b.theorem", "Old"), Canonical: identity.Of("c.theorem", "Now"), Deprecated: true},
	}
	var buf bytes.Buffer
	if err := renderIdentities(&buf, entries); err != nil {
		t.Fatal(err)
	}
	want := "a.theorem#New\n  aliases: a.theorem#Old\n" +
		"b.theorem#Old -> c.theorem#Now (renamed)\n"
	if buf.String() != want {
		t.Fatalf("renderIdentities =\n%s\nwant\n%s", buf.String(), want)
	}
}

// execute runs the CLI in process. Flag values persist on the global
// commands, so every call spells out the flags it depends on.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, configFileName)
	writeFile(t, cfg, "[output]\nformat = \"short\"\n")
	good := filepath.Join(root, "good")
	writeFile(t, filepath.Join(good, "deposit.theorem"), validTheorem)

	stdout, _, err := execute(t, "check", "--config", cfg, "--color", "off", "--ui", "off", good)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "ok: 1 theorems in 1 files") {
		t.Fatalf("unexpected check output:\n%s", stdout)
	}

	bad := filepath.Join(root, "bad")
	writeFile(t, filepath.Join(bad, "deposit.theorem"), strings.Replace(validTheorem, "unwind: 4", "unwind: 0", 1))
	stdout, _, err = execute(t, "check", "--config", cfg, "--color", "off", "--ui", "off", bad)
	if !errors.Is(err, errReported) {
		t.Fatalf("check error = %v, want errReported", err)
	}
	if !strings.Contains(stdout, "schema.validation_failure | ") ||
		!strings.Contains(stdout, "Evidence.kani.unwind must be a positive integer (> 0)") {
		t.Fatalf("unexpected diagnostics:\n%s", stdout)
	}

	stdout, _, err = execute(t, "mangle", "--config", cfg, "--color", "off", "--format", "json", good)
	if err != nil {
		t.Fatalf("mangle failed: %v", err)
	}
	var table mangle.SymbolTable
	if err := json.Unmarshal([]byte(stdout), &table); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(table.Harnesses) != 1 || table.Harnesses[0].Theorem != "Deposit" {
		t.Fatalf("unexpected table: %+v", table)
	}

	stdout, _, err = execute(t, "expr", "--config", cfg, "--color", "off", "--format", "pretty", "a.balance() >= amount")
	if err != nil || !strings.Contains(stdout, "form: ") {
		t.Fatalf("expr = %q, %v", stdout, err)
	}
	_, stderr, err := execute(t, "expr", "--config", cfg, "--color", "off", "--format", "pretty", "{ x }")
	if !errors.Is(err, errReported) || !strings.Contains(stderr, "must be a single expression") {
		t.Fatalf("expr block = %v\n%s", err, stderr)
	}
	_, stderr, err = execute(t, "expr", "--config", cfg, "--color", "off", "--tokens", `x == "open`)
	if !errors.Is(err, errReported) || strings.Count(stderr, "unterminated double quote string") != 1 {
		t.Fatalf("expr tokens = %v\n%s", err, stderr)
	}
}
