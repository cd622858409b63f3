package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer never puts it into a token list.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an unsigned decimal integer literal.
	IntLit
	// Separator ends a statement: a newline or ';'.
	Separator

	// Plus represents the '+' operator.
	Plus // +
	// Minus represents the '-' operator.
	Minus // -
	// Star represents the '*' operator.
	Star // *
	// Slash represents the '/' operator.
	Slash // /
	// Caret represents the '^' (power) operator.
	Caret // ^
	// EqEq represents the '==' operator.
	EqEq // ==
	// Lt represents the '<' operator.
	Lt // <
	// LtEq represents the '<=' operator.
	LtEq // <=
	// Gt represents the '>' operator.
	Gt // >
	// GtEq represents the '>=' operator.
	GtEq // >=

	// Assign represents the '=' punctuation.
	Assign // =
	// Colon represents the ':' punctuation.
	Colon // :
	// Comma represents the ',' punctuation.
	Comma // ,
	// LParen represents the '(' delimiter.
	LParen // (
	// RParen represents the ')' delimiter.
	RParen // )
	// LBrace represents the '{' delimiter.
	LBrace // {
	// RBrace represents the '}' delimiter.
	RBrace // }
)

var kindText = [...]string{
	Invalid:   "invalid",
	EOF:       "EOF",
	Ident:     "ident",
	IntLit:    "integer",
	Separator: "newline",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Caret:     "^",
	EqEq:      "==",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	Assign:    "=",
	Colon:     ":",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

// String returns the fixed display form of the kind.
func (k Kind) String() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}
	return "unknown"
}

// Precedence classes of binary operators. Zero means "not an operator".
const (
	PrecNone    = 0
	PrecCompare = 1 // == < > <= >=
	PrecAdd     = 2 // + -
	PrecMul     = 3 // * /
	PrecPow     = 4 // ^
)

// Precedence returns the binding class of k.
func (k Kind) Precedence() int {
	switch k {
	case EqEq, Lt, Gt, LtEq, GtEq:
		return PrecCompare
	case Plus, Minus:
		return PrecAdd
	case Star, Slash:
		return PrecMul
	case Caret:
		return PrecPow
	default:
		return PrecNone
	}
}

// IsBinaryOp reports whether k may appear between two operands.
func (k Kind) IsBinaryOp() bool {
	return k.Precedence() != PrecNone
}

// IsUnaryOp reports whether k may prefix an operand.
func (k Kind) IsUnaryOp() bool {
	return k == Plus || k == Minus
}

// IsComparison reports whether k is one of == < > <= >=.
func (k Kind) IsComparison() bool {
	return k.Precedence() == PrecCompare
}

// RightAssoc reports whether chains of k group to the right.
// Only '^' does: 2^3^2 is 2^(3^2).
func (k Kind) RightAssoc() bool {
	return k == Caret
}
