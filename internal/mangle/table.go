package mangle

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the SymbolTable layout changes.
const tableSchemaVersion uint16 = 1

// SymbolTable maps every canonical name of a batch to its generated
// identifier. Entries are sorted by canonical name.
type SymbolTable struct {
	Schema    uint16          `json:"schema" msgpack:"schema"`
	Actions   []ActionSymbol  `json:"actions" msgpack:"actions"`
	Modules   []ModuleSymbol  `json:"modules" msgpack:"modules"`
	Harnesses []HarnessSymbol `json:"harnesses" msgpack:"harnesses"`
}

type ActionSymbol struct {
	Name  string `json:"name" msgpack:"name"`
	Ident string `json:"ident" msgpack:"ident"`
}

type ModuleSymbol struct {
	Path  string `json:"path" msgpack:"path"`
	Slug  string `json:"slug" msgpack:"slug"`
	Ident string `json:"ident" msgpack:"ident"`
}

// HarnessSymbol names the generated harness of one theorem. Module is the
// ModuleIdent of Source.
type HarnessSymbol struct {
	Key     string `json:"key" msgpack:"key"`
	Source  string `json:"source" msgpack:"source"`
	Theorem string `json:"theorem" msgpack:"theorem"`
	Module  string `json:"module" msgpack:"module"`
	Ident   string `json:"ident" msgpack:"ident"`
}

// Path renders `{module}::{backend}::{harness}`.
func (h HarnessSymbol) Path(backend string) string {
	return h.Module + "::" + backend + "::" + h.Ident
}

// Action returns the generated identifier of a canonical action name.
func (t *SymbolTable) Action(name string) (string, bool) {
	for _, a := range t.Actions {
		if a.Name == name {
			return a.Ident, true
		}
	}
	return "", false
}

// Harness looks a theorem up by its `{source}#{theorem}` key.
func (t *SymbolTable) Harness(key string) (HarnessSymbol, bool) {
	for _, h := range t.Harnesses {
		if h.Key == key {
			return h, true
		}
	}
	return HarnessSymbol{}, false
}

// EncodeJSON writes the table as indented JSON.
func (t *SymbolTable) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// EncodeMsgpack writes the binary form read by DecodeMsgpack.
func (t *SymbolTable) EncodeMsgpack(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(t)
}

// DecodeMsgpack reads a table written by EncodeMsgpack and rejects other
// schema versions.
func DecodeMsgpack(r io.Reader) (*SymbolTable, error) {
	var t SymbolTable
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode symbol table: %w", err)
	}
	if t.Schema != tableSchemaVersion {
		return nil, fmt.Errorf("symbol table schema %d is not supported (want %d)", t.Schema, tableSchemaVersion)
	}
	return &t, nil
}
