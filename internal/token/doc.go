// Package token defines lexical token kinds for embedded Rust expressions.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Literal suffixes (10u64, 1.5f32) stay part of the literal's Text.
//   - Raw identifiers (r#type) are Ident tokens whose Text keeps the prefix.
//   - Comments and whitespace are leading Trivia and never appear in the main
//     token stream.
package token
