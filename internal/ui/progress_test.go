package ui

import (
	"errors"
	"strings"
	"testing"

	"theoremc/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.theorem"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.theorem", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "loading" {
		t.Fatalf("status after working event = %q, want loading", got)
	}

	// unknown files are appended in arrival order
	m.applyEvent(driver.Event{File: "b.theorem", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("bad")})
	if len(m.items) != 2 || m.items[1].status != "error" || !m.items[1].final {
		t.Fatalf("unexpected items: %+v", m.items)
	}
	m.applyEvent(driver.Event{File: "b.theorem", Stage: driver.StageValidate, Status: driver.StatusDone})
	if m.items[1].status != "error" {
		t.Fatalf("final status overwritten: %q", m.items[1].status)
	}

	m.applyEvent(driver.Event{File: "a.theorem", Stage: driver.StageLoad, Status: driver.StatusDone})
	if p := m.percent(); p < 0.79 || p > 0.81 {
		t.Fatalf("percent = %v, want 0.8", p)
	}
	m.applyEvent(driver.Event{File: "a.theorem", Stage: driver.StageValidate, Status: driver.StatusDone})
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}

	m.applyEvent(driver.Event{Stage: driver.StageMangle, Status: driver.StatusDone})
	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: check (mangle ok), 1 failed", "a.theorem", "b.theorem"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
