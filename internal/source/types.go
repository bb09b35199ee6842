package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, inline expression).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Pos locates a value inside a multi-document theorem file.
// Doc is the 0-based index of the YAML sub-document; Line and Col are
// 1-based and counted from the start of the file, not the sub-document.
type Pos struct {
	Doc  uint32
	Line uint32
	Col  uint32
}

// IsZero reports whether the position was never set.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// LineCol drops the document index.
func (p Pos) LineCol() LineCol {
	return LineCol{Line: p.Line, Col: p.Col}
}

// Spanned pairs a decoded value with the position it was read from.
type Spanned[T any] struct {
	Value T
	Pos   Pos
}

// At builds a Spanned value.
func At[T any](v T, pos Pos) Spanned[T] {
	return Spanned[T]{Value: v, Pos: pos}
}
