package mangle

import (
	"theoremc/internal/diag"
	"theoremc/internal/schema"
)

// File is one loaded source file and its documents in order.
type File struct {
	Path string
	Docs []schema.Document
}

// Batch registers every file and theorem and finishes the registry.
func Batch(files []File) (*SymbolTable, *diag.Diagnostic) {
	r := NewRegistry()
	for _, f := range files {
		r.AddModule(f.Path)
		for i := range f.Docs {
			r.AddTheorem(&f.Docs[i])
		}
	}
	return r.Finish()
}
