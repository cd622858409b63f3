package token

import (
	"athena/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string // исходный текст, для EOF пустой
	Value uint64 // numeric value for IntLit
}

// IsLiteral reports whether the token is an integer literal.
func (t Token) IsLiteral() bool { return t.Kind == IntLit }

// IsPunctOrOp reports whether the token is an operator or punctuation.
func (t Token) IsPunctOrOp() bool { return t.Kind >= Plus && t.Kind <= RBrace }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEnd reports whether the token terminates a statement: a separator or EOF.
func (t Token) IsEnd() bool { return t.Kind == Separator || t.Kind == EOF }

// String renders the token for listings: the kind, plus the text for idents and literals.
func (t Token) String() string {
	switch t.Kind {
	case Ident, IntLit:
		return t.Kind.String() + "(" + t.Text + ")"
	default:
		return t.Kind.String()
	}
}
