package observ

import (
	"strings"
	"testing"
)

func TestTimerReportKeepsOrder(t *testing.T) {
	timer := NewTimer()
	load := timer.Begin("load")
	done := timer.Track("validate")
	timer.End(load, "3 files")
	done("")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[0].Note != "3 files" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "validate" {
		t.Fatalf("second phase = %+v", report.Phases[1])
	}

	summary := timer.Summary()
	if !strings.HasPrefix(summary, "timings:\n") || !strings.Contains(summary, "// 3 files") {
		t.Fatalf("summary = %q", summary)
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Track("x")("note")
	if r := timer.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
