package parser

import (
	"athena/internal/ast"
	"athena/internal/diag"
	"athena/internal/source"
	"athena/internal/token"
)

// fail records a syntax error unless the budget is already spent.
// It returns false when the error was suppressed.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) bool {
	if p.opts.Enough() {
		p.suppressed++
		return false
	}
	p.opts.CurrentErrors++
	p.pending = append(p.pending, diag.NewError(code, sp, msg))
	return true
}

// mark запоминает, сколько ошибок было до под-разбора.
func (p *Parser) mark() int {
	return len(p.pending)
}

// wrap adds context to the first error raised since mark, if the subtree
// carries an error at all. Notes accumulate innermost first.
func (p *Parser) wrap(mark int, id ast.ExprID, sp source.Span, msg string) {
	if mark >= len(p.pending) {
		return
	}
	if x := p.arenas.Exprs.Get(id); x == nil || !x.HasError {
		return
	}
	p.pending[mark] = p.pending[mark].WithNote(sp, msg)
}

// errorSpan points EOF diagnostics just past the last token instead of at it.
func errorSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF {
		return source.Span{File: tok.Span.File, Start: tok.Span.End, End: tok.Span.End}
	}
	return tok.Span
}

// describe renders a token for messages: 'x' for punctuation, plain words otherwise.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Separator:
		if tok.Text == ";" {
			return "';'"
		}
		return "newline"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.IntLit:
		return "integer " + tok.Text
	}
	return "'" + tok.Kind.String() + "'"
}
