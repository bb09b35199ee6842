package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit string) {
	t.Helper()
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = v, commit
	t.Cleanup(func() {
		Version, GitCommit = origVersion, origCommit
	})
}

func TestCurrentTrimsAndDefaults(t *testing.T) {
	withVersion(t, "  1.2.3 ", " abc123 ")
	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" {
		t.Fatalf("Current() = %+v", info)
	}

	withVersion(t, "", "")
	if got := Current().Version; got != "dev" {
		t.Fatalf("empty version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	cases := map[string]string{
		"0.1.0-dev":    "0.1.0-dev",
		"1.0.0-beta.1": "1.0.0-beta.1",
		"2.3.4":        "2.3.4",
		"nightly":      "nightly",
		"1.2":          "1.2",
	}
	for in, want := range cases {
		if got := Colored(in); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	if got := Colored("1.2.3"); got == "1.2.3" {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
}
