package ast

import (
	"fmt"

	"athena/internal/source"
	"athena/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Ints     *Arena[ExprIntData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Parens   *Arena[ExprParenData]
	Calls    *Arena[ExprCallData]
	Errors   *Arena[ExprErrorData]
}

// NewExprs creates per-kind arenas preallocated with capHint (1<<6 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Ints:     NewArena[ExprIntData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](small),
		Parens:   NewArena[ExprParenData](small),
		Calls:    NewArena[ExprCallData](small),
		Errors:   NewArena[ExprErrorData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, hasError bool, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:     kind,
		Span:     span,
		HasError: hasError,
		Payload:  PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated expressions.
func (e *Exprs) Len() uint32 {
	return e.Arena.Len()
}

func (e *Exprs) hasError(id ExprID) bool {
	if x := e.Get(id); x != nil {
		return x.HasError
	}
	return false
}

func (e *Exprs) spanOf(id ExprID) (source.Span, bool) {
	if x := e.Get(id); x != nil {
		return x.Span, true
	}
	return source.Span{}, false
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, false, payload)
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewInt creates a new integer literal.
func (e *Exprs) NewInt(span source.Span, value uint64) ExprID {
	payload := e.Ints.Allocate(ExprIntData{Value: value})
	return e.new(ExprInt, span, false, payload)
}

// Int returns the literal data for the given expression ID.
func (e *Exprs) Int(id ExprID) (*ExprIntData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprInt {
		return nil, false
	}
	return e.Ints.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary node spanning both operands. op must be a binary operator.
func (e *Exprs) NewBinary(op token.Kind, opSpan source.Span, left, right ExprID) ExprID {
	if !op.IsBinaryOp() {
		panic(fmt.Sprintf("ast: %q is not a binary operator", op))
	}
	span := opSpan
	if sp, ok := e.spanOf(left); ok {
		span = span.Cover(sp)
	}
	if sp, ok := e.spanOf(right); ok {
		span = span.Cover(sp)
	}
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, e.hasError(left) || e.hasError(right), payload)
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a prefix node. op must be '+' or '-'.
func (e *Exprs) NewUnary(op token.Kind, opSpan source.Span, operand ExprID) ExprID {
	if !op.IsUnaryOp() {
		panic(fmt.Sprintf("ast: %q is not a unary operator", op))
	}
	span := opSpan
	if sp, ok := e.spanOf(operand); ok {
		span = span.Cover(sp)
	}
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, OpSpan: opSpan, Operand: operand})
	return e.new(ExprUnary, span, e.hasError(operand), payload)
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewParen creates a group spanning from the open to the close delimiter.
func (e *Exprs) NewParen(open, closeSpan source.Span, inner ExprID) ExprID {
	span := open.Cover(closeSpan)
	if sp, ok := e.spanOf(inner); ok {
		span = span.Cover(sp)
	}
	payload := e.Parens.Allocate(ExprParenData{Open: open, Close: closeSpan, Inner: inner})
	return e.new(ExprParen, span, e.hasError(inner), payload)
}

// Paren returns the group data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewCall creates a call node from the callee name up to the closing ')'.
func (e *Exprs) NewCall(name source.StringID, nameSpan, closeSpan source.Span, args []ExprID) ExprID {
	span := nameSpan.Cover(closeSpan)
	hasError := false
	for _, arg := range args {
		if sp, ok := e.spanOf(arg); ok {
			span = span.Cover(sp)
		}
		hasError = hasError || e.hasError(arg)
	}
	payload := e.Calls.Allocate(ExprCallData{Name: name, NameSpan: nameSpan, Args: args})
	return e.new(ExprCall, span, hasError, payload)
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewError creates a recovery placeholder. The span also covers partial when present.
func (e *Exprs) NewError(span source.Span, reason ErrorReason, tok token.Kind, partial ExprID) ExprID {
	if sp, ok := e.spanOf(partial); ok {
		span = span.Cover(sp)
	}
	payload := e.Errors.Allocate(ExprErrorData{Reason: reason, Tok: tok, Partial: partial})
	return e.new(ExprError, span, true, payload)
}

// Error returns the placeholder data for the given expression ID.
func (e *Exprs) Error(id ExprID) (*ExprErrorData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprError {
		return nil, false
	}
	return e.Errors.Get(uint32(expr.Payload)), true
}

// Children returns the direct sub-expressions of id in source order.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprBinary:
		d := e.Binaries.Get(uint32(expr.Payload))
		return []ExprID{d.Left, d.Right}
	case ExprUnary:
		return []ExprID{e.Unaries.Get(uint32(expr.Payload)).Operand}
	case ExprParen:
		return []ExprID{e.Parens.Get(uint32(expr.Payload)).Inner}
	case ExprCall:
		return e.Calls.Get(uint32(expr.Payload)).Args
	case ExprError:
		if p := e.Errors.Get(uint32(expr.Payload)).Partial; p.IsValid() {
			return []ExprID{p}
		}
	}
	return nil
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of that node.
func (e *Exprs) Walk(id ExprID, fn func(ExprID, *Expr) bool) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	if !fn(id, expr) {
		return
	}
	for _, child := range e.Children(id) {
		e.Walk(child, fn)
	}
}
