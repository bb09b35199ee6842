package diag

// Severity ranks a diagnostic. Only SevError fails a run.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String is the lower-case label used by every renderer.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// Fails reports whether a diagnostic of this severity fails a run.
func (s Severity) Fails() bool {
	return s >= SevError
}
