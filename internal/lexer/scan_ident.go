package lexer

import (
	"golang.org/x/text/unicode/norm"

	"athena/internal/diag"
	"athena/internal/token"
)

// scanIdent сканирует идентификатор. ASCII идёт по быстрому пути, остальное
// через unicode-классификаторы. Не-буквенная руна уходит в scanOperatorOrPunct.
// Text приводится к NFC, так что "é" и "é" дают один и тот же символ.
func (lx *Lexer) scanIdent() (token.Token, bool) {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{}, false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if !norm.NFC.IsNormalString(tok.Text) {
		tok.Text = norm.NFC.String(tok.Text)
	}
	return tok, true
}

// unknownChar reports the rune under the cursor and skips it.
func (lx *Lexer) unknownChar() {
	start := lx.cursor.Mark()
	lx.bumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	lx.report(lx.cursor.SpanFrom(start), diag.LexUnknownChar, "unknown character")
}
