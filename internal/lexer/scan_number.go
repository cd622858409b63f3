package lexer

import (
	"strconv"

	"athena/internal/diag"
	"athena/internal/token"
)

// scanNumber reads a run of ASCII digits and converts it to uint64.
// Overflow is a lexical error; the literal is dropped.
func (lx *Lexer) scanNumber() (token.Token, bool) {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.IntLit, start)
	v, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		lx.report(tok.Span, diag.LexIntOverflow, "integer literal out of range")
		return token.Token{}, false
	}
	tok.Value = v
	return tok, true
}
