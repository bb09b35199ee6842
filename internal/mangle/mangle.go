// Package mangle turns canonical names into the identifiers generated code
// uses, and proves the mapping is collision free for a whole batch.
//
// Every identifier is a readable slug followed by a 12-hex-digit hash of
// the canonical input. The slug keeps generated code legible; the hash
// separates inputs that sanitize to the same slug. Neither replaces the
// Registry's explicit uniqueness checks.
package mangle

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash12 returns the first 12 lowercase hex digits of sha256(s).
func Hash12(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:6])
}

// EscapeSegment escapes one segment of a dotted action name. An
// underscore becomes `_u` so that `b_c` can never meet the `__` joiner.
func EscapeSegment(seg string) string {
	return strings.ReplaceAll(seg, "_", "_u")
}

// ActionSlug escapes every segment of a dotted action name and joins
// them with `__`.
func ActionSlug(name string) string {
	segs := strings.Split(name, ".")
	for i, s := range segs {
		segs[i] = EscapeSegment(s)
	}
	return strings.Join(segs, "__")
}

// ActionIdent is `{slug}__h{hash12(name)}`, for example
// hnsw.attach_node → hnsw__attach_unode__h1a2b3c4d5e6f.
func ActionIdent(name string) string {
	return ActionSlug(name) + "__h" + Hash12(name)
}

// ModuleSlug sanitizes a file path into a lower-case identifier.
// Both `/` and `\` separate components, which are joined with `__`.
// Within a component every character outside [A-Za-z0-9_] becomes `_`,
// runs of `_` collapse to one and edge underscores are trimmed. Empty and
// `.` components are dropped.
func ModuleSlug(path string) string {
	var parts []string
	for _, comp := range strings.Split(strings.ReplaceAll(path, `\`, "/"), "/") {
		if comp == "" || comp == "." {
			continue
		}
		if s := sanitize(comp); s != "" {
			parts = append(parts, s)
		}
	}
	slug := strings.ToLower(strings.Join(parts, "__"))
	if slug == "" {
		return "_"
	}
	if slug[0] >= '0' && slug[0] <= '9' {
		slug = "_" + slug
	}
	return slug
}

func sanitize(comp string) string {
	var b strings.Builder
	b.Grow(len(comp))
	under := false
	for i := 0; i < len(comp); i++ {
		c := comp[i]
		if !isIdentByte(c) || c == '_' {
			if !under {
				b.WriteByte('_')
			}
			under = true
			continue
		}
		b.WriteByte(c)
		under = false
	}
	return strings.Trim(b.String(), "_")
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// ModuleIdent is `{ModuleSlug(path)}__{hash12(path)}`. The hash covers
// the path as written, so spellings that share a slug stay distinct.
func ModuleIdent(path string) string {
	return ModuleSlug(path) + "__" + Hash12(path)
}

// HarnessIdent is the snake_case theorem name plus
// `__h{hash12(path + "#" + theorem)}`.
func HarnessIdent(path, theorem string) string {
	return SnakeCase(theorem) + "__h" + Hash12(path+"#"+theorem)
}

// HarnessPath joins a module, a backend submodule and a harness:
// `{module}::{backend}::{harness}`.
func HarnessPath(path, theorem, backend string) string {
	return ModuleIdent(path) + "::" + backend + "::" + HarnessIdent(path, theorem)
}

// SnakeCase converts an identifier such as DepositHTTPRequest to
// deposit_http_request. Names already in lower snake case are returned
// unchanged.
func SnakeCase(name string) string {
	if isLowerSnake(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUpper(c) && i > 0 {
			prev := name[i-1]
			nextLower := i+1 < len(name) && isLower(name[i+1])
			if isLower(prev) || isDigit(prev) || (isUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		if isUpper(c) {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLowerSnake(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(isLower(c) || c == '_' || i > 0 && isDigit(c)) {
			return false
		}
	}
	return true
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
