package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevelAndShouldEmit(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	if err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeDocument) {
		t.Fatalf("detail must cover files but not documents")
	}
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase must cover passes but not files")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatalf("off must not emit")
	}
}

func TestStartNestsSpansThroughContext(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopePass, "validate")
	_, inner := Start(ctx, ScopeDocument, "doc:Deposit")
	inner.WithExtra("check", "steps").End("failed")
	outer.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	var evs []jsonEvent
	for _, line := range lines {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad json %q: %v", line, err)
		}
		evs = append(evs, ev)
	}
	if got := ParentSpan(ctx); got != evs[0].SpanID {
		t.Fatalf("ParentSpan = %d, want %d", got, evs[0].SpanID)
	}
	if got := ParentSpan(context.Background()); got != 0 {
		t.Fatalf("ParentSpan outside spans = %d, want 0", got)
	}
	if evs[1].ParentID != evs[0].SpanID {
		t.Fatalf("inner parent = %d, want %d", evs[1].ParentID, evs[0].SpanID)
	}
	if evs[2].Kind != "end" || evs[2].Detail != "failed" || evs[2].Extra["check"] != "steps" {
		t.Fatalf("unexpected inner end event: %+v", evs[2])
	}
}

func TestFilteredSpanIsInert(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))
	_, span := Start(ctx, ScopeDocument, "doc:X")
	span.End("")
	Point(ctx, ScopeFile, "skipped", "")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• b") || !strings.Contains(buf.String(), "• c") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewErrorLevelUsesRing(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("error level must keep a ring, got %T", tr)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("both mode must include a ring")
	}

	tr, err = New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level must give a disabled tracer")
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Scope: ScopeFile, Name: "file:a", Extra: map[string]string{"z": "1", "a": "2"}}
	got := string(FormatEvent(ev, FormatText, ev.Time))
	if !strings.HasSuffix(got, "    ← file:a {a=2, z=1}\n") {
		t.Fatalf("text = %q", got)
	}
}
