package parser

import (
	"athena/internal/ast"
)

// parseExpr (precedence climbing): унарный префикс или операнд, затем
// цикл по бинарным операторам с приоритетом >= minPrec.
func (p *Parser) parseExpr(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		op := p.current()
		prec, rhsMin, ok := binaryBinding(op.Kind)
		if !ok || prec < minPrec {
			return left
		}
		p.advance()

		mark := p.mark()
		right := p.parseExpr(rhsMin)
		p.wrap(mark, right, op.Span, "bad right-hand side for binary '"+op.Kind.String()+"'")
		left = p.arenas.Exprs.NewBinary(op.Kind, op.Span, left, right)
	}
}

// parseUnary handles a single '+' or '-' prefix. The prefix takes exactly
// one operand, so "-x^2" groups as (-x)^2 and "--x" is an error.
func (p *Parser) parseUnary() ast.ExprID {
	tok := p.current()
	if !tok.Kind.IsUnaryOp() {
		return p.parseOperand()
	}
	p.advance()
	mark := p.mark()
	operand := p.parseOperand()
	p.wrap(mark, operand, tok.Span, "bad operand for unary '"+tok.Kind.String()+"'")
	return p.arenas.Exprs.NewUnary(tok.Kind, tok.Span, operand)
}
