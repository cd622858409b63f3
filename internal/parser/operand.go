package parser

import (
	"strconv"

	"athena/internal/ast"
	"athena/internal/diag"
	"athena/internal/token"
)

// parseOperand: ident, call, integer или скобки. Всё остальное считается ошибкой.
func (p *Parser) parseOperand() ast.ExprID {
	tok := p.current()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCall(tok)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text))
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewInt(tok.Span, tok.Value)
	case token.LParen:
		return p.parseParen()
	default:
		return p.badOperand()
	}
}

// badOperand reports the current token and replaces it with an error node.
// Within budget only the failing token is consumed (never a separator or EOF);
// once the budget is spent the cursor jumps to EOF.
func (p *Parser) badOperand() ast.ExprID {
	tok := p.current()
	sp := errorSpan(tok)
	if !p.fail(diag.SynBadExpr, sp, "expected expression, found "+describe(tok)) {
		p.skipToEnd()
	} else if !tok.IsEnd() {
		p.advance()
	}
	return p.arenas.Exprs.NewError(sp, ast.ErrBadExpr, tok.Kind, ast.NoExprID)
}

func (p *Parser) parseParen() ast.ExprID {
	open := p.advance()
	mark := p.mark()
	inner := p.parseExpr(token.PrecCompare)
	p.wrap(mark, inner, open.Span, "bad expression inside parentheses")

	if p.at(token.RParen) {
		closeTok := p.advance()
		return p.arenas.Exprs.NewParen(open.Span, closeTok.Span, inner)
	}
	return p.unclosed(open, inner, "expected ')' after expression")
}

// unclosed reports a missing ')' for the delimiter opened at open.
func (p *Parser) unclosed(open token.Token, partial ast.ExprID, msg string) ast.ExprID {
	tok := p.current()
	sp := errorSpan(tok)
	if p.fail(diag.SynUnclosedParen, sp, msg+", found "+describe(tok)) {
		last := len(p.pending) - 1
		p.pending[last] = p.pending[last].WithNote(open.Span, "unclosed '(' opened here")
	} else {
		p.skipToEnd()
	}
	return p.arenas.Exprs.NewError(open.Span, ast.ErrUnclosedParen, tok.Kind, partial)
}

// parseCall разбирает список аргументов после `name(`.
func (p *Parser) parseCall(name token.Token) ast.ExprID {
	open := p.advance()
	nameID := p.arenas.StringsInterner.Intern(name.Text)
	var args []ast.ExprID

	for !p.at(token.RParen) {
		mark := p.mark()
		arg := p.parseExpr(token.PrecCompare)
		p.wrap(mark, arg, p.spanOf(arg), "bad argument "+strconv.Itoa(len(args)+1)+" in call to '"+name.Text+"'")
		args = append(args, arg)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RParen) {
			call := p.arenas.Exprs.NewCall(nameID, name.Span, open.Span, args)
			return p.unclosed(open, call, "expected ',' or ')' in argument list")
		}
	}

	closeTok := p.advance()
	return p.arenas.Exprs.NewCall(nameID, name.Span, closeTok.Span, args)
}
