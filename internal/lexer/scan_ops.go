package lexer

import (
	"athena/internal/token"
)

// Жадность: сначала 2-символьные (==, <=, >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start), true
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start), true
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start), true
	}

	var k token.Kind
	switch lx.cursor.Peek() {
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '*':
		k = token.Star
	case '/':
		k = token.Slash
	case '^':
		k = token.Caret
	case '<':
		k = token.Lt
	case '>':
		k = token.Gt
	case '=':
		k = token.Assign
	case ':':
		k = token.Colon
	case ',':
		k = token.Comma
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	default:
		lx.unknownChar()
		return token.Token{}, false
	}
	lx.cursor.Bump()
	return lx.emit(k, start), true
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
