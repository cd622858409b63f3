package ast

import (
	"athena/internal/source"
	"athena/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent is a free symbol.
	ExprIdent ExprKind = iota + 1
	// ExprInt is an unsigned integer literal.
	ExprInt
	// ExprBinary applies a binary operator to two operands.
	ExprBinary
	// ExprUnary applies '+' or '-' to one operand.
	ExprUnary
	// ExprParen is a parenthesized sub-expression; its span includes both delimiters.
	ExprParen
	// ExprCall is an identifier immediately followed by an argument list.
	ExprCall
	// ExprError is a recovery placeholder left by the parser.
	ExprError
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprInt:
		return "int"
	case ExprBinary:
		return "binary"
	case ExprUnary:
		return "unary"
	case ExprParen:
		return "paren"
	case ExprCall:
		return "call"
	case ExprError:
		return "error"
	}
	return "unknown"
}

// Expr represents an expression node in the AST.
//
// HasError is computed once by the constructor: true for ExprError and for
// every node with an erroneous child.
type Expr struct {
	Kind     ExprKind
	Span     source.Span
	HasError bool
	Payload  PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprIntData struct {
	Value uint64
}

type ExprBinaryData struct {
	Op     token.Kind
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprUnaryData struct {
	Op      token.Kind
	OpSpan  source.Span
	Operand ExprID
}

type ExprParenData struct {
	Open  source.Span
	Close source.Span
	Inner ExprID
}

type ExprCallData struct {
	Name     source.StringID
	NameSpan source.Span
	Args     []ExprID
}

// ErrorReason tells why the parser substituted an ExprError.
type ErrorReason uint8

const (
	// ErrBadExpr: the token in an operand position could not start an expression.
	ErrBadExpr ErrorReason = iota + 1
	// ErrUnclosedParen: '(' of a group or call without the matching ')'.
	ErrUnclosedParen
	// ErrTrailing: input left over after a complete expression.
	ErrTrailing
)

func (r ErrorReason) String() string {
	switch r {
	case ErrBadExpr:
		return "bad-expr"
	case ErrUnclosedParen:
		return "unclosed-paren"
	case ErrTrailing:
		return "trailing"
	}
	return "unknown"
}

type ExprErrorData struct {
	Reason ErrorReason
	// Tok is the offending token kind.
	Tok token.Kind
	// Partial is the best-effort subtree built before the failure, if any.
	Partial ExprID
}
