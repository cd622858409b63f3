// Package token defines lexical token kinds for athena expressions.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Every Kind has a fixed display form (Kind.String) and a precedence class
//     (Kind.Precedence): 0 none, 1 comparisons, 2 add/sub, 3 mul/div, 4 pow.
//   - Only '+' and '-' are unary operators.
//   - A token list produced by the lexer always ends with exactly one EOF token.
package token
