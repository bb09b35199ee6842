package identity

import (
	"theoremc/internal/schema"
)

// Entry is the identity record of one loaded theorem.
type Entry struct {
	ID         ID   `json:"id"`
	Canonical  ID   `json:"canonical"`
	Aliases    []ID `json:"aliases,omitempty"`
	Deprecated bool `json:"deprecated,omitempty"` // the document still uses a renamed identity
}

// Report resolves the identity of every document against g, in document
// order. g may be nil.
func Report(docs []schema.Document, g *AliasGraph) []Entry {
	out := make([]Entry, 0, len(docs))
	for i := range docs {
		id := OfDocument(&docs[i])
		canonical := g.Resolve(id)
		out = append(out, Entry{
			ID:         id,
			Canonical:  canonical,
			Aliases:    g.AliasesOf(canonical),
			Deprecated: g.Deprecated(id),
		})
	}
	return out
}
