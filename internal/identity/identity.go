// Package identity gives every theorem a stable, reporting-facing name,
// `{normalized_path}#{theorem}`, and follows an external rename graph so
// a theorem keeps its history across file moves and renames.
package identity

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"theoremc/internal/schema"
)

// ID is a stable external identity.
type ID struct {
	Path    string
	Theorem string
}

// Of builds the identity of theorem in the file at p.
func Of(p, theorem string) ID {
	return ID{Path: NormalizePath(p), Theorem: theorem}
}

// OfDocument is Of(doc.Source, doc.Name()).
func OfDocument(doc *schema.Document) ID {
	return Of(doc.Source, doc.Name())
}

func (id ID) String() string {
	return id.Path + "#" + id.Theorem
}

func (id ID) IsZero() bool {
	return id == ID{}
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NormalizePath puts p in NFC, uses forward slashes and cleans dot
// segments, so that one file has one spelling regardless of the
// platform or editor that produced it.
func NormalizePath(p string) string {
	p = norm.NFC.String(p)
	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// Parse reads `path#Theorem`. The theorem part must be a valid identifier;
// the split happens at the last `#`.
func Parse(s string) (ID, error) {
	at := strings.LastIndexByte(s, '#')
	if at < 0 {
		return ID{}, fmt.Errorf("identity '%s' must have the form path#Theorem", s)
	}
	p, theorem := strings.TrimSpace(s[:at]), strings.TrimSpace(s[at+1:])
	if p == "" {
		return ID{}, fmt.Errorf("identity '%s' has an empty path", s)
	}
	if err := schema.ValidateIdentifier(theorem); err != nil {
		return ID{}, fmt.Errorf("identity '%s': %w", s, err)
	}
	return Of(p, theorem), nil
}
