// Package token defines lexical token kinds and trivia for argon sources.
// Invariants:
//   - Token.Span covers the source bytes of the token exactly.
//   - Token.Text equals the source slice, except identifiers, which are NFC-normalized.
//   - Built-in type names (i32, u64, f32, bool, ...) are identifiers;
//     the parser recognizes them, not the lexer.
package token
