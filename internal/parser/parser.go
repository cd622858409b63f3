package parser

import (
	"athena/internal/ast"
	"athena/internal/diag"
	"athena/internal/source"
	"athena/internal/token"
)

// DefaultMaxErrors is the syntax error budget used when Options.MaxErrors is zero.
const DefaultMaxErrors = 1

type Options struct {
	// MaxErrors bounds the reported syntax errors; 0 means DefaultMaxErrors.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

func (o *Options) limit() uint {
	if o.MaxErrors == 0 {
		return DefaultMaxErrors
	}
	return o.MaxErrors
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	return o.CurrentErrors >= o.limit()
}

type Result struct {
	// Root is the tree of ParseExpr; NoExprID for ParseProgram.
	Root ast.ExprID
	// Roots holds one tree per statement of ParseProgram.
	Roots []ast.ExprID
	// Diagnostics are the reported syntax errors, in source order of detection.
	Diagnostics []diag.Diagnostic
	// Suppressed counts errors dropped after the budget was spent.
	Suppressed uint
}

// HasErrors reports whether any syntax error was detected, reported or not.
func (r Result) HasErrors() bool {
	return len(r.Diagnostics) > 0 || r.Suppressed > 0
}

// Parser: состояние парсера на один поток токенов
type Parser struct {
	toks       []token.Token
	pos        int
	arenas     *ast.Builder
	opts       Options
	pending    []diag.Diagnostic // буфер ошибок: заметки добавляются при раскрутке
	suppressed uint
}

func newParser(toks []token.Token, arenas *ast.Builder, opts Options) *Parser {
	if arenas == nil {
		arenas = ast.NewBuilder(ast.Hints{Exprs: uint(len(toks))}, nil) //nolint:gosec // len is non-negative
	}
	return &Parser{
		toks:   terminated(toks),
		arenas: arenas,
		opts:   opts,
	}
}

// terminated guarantees a trailing EOF so the cursor never runs off the slice.
func terminated(toks []token.Token) []token.Token {
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		return toks
	}
	eof := token.Token{Kind: token.EOF}
	if n := len(toks); n > 0 {
		eof.Span = toks[n-1].Span
	}
	out := make([]token.Token, 0, len(toks)+1)
	out = append(out, toks...)
	return append(out, eof)
}

// ParseExpr parses a whole token stream as one expression.
//
// It is total: a stream without any expression yields the literal 0 with an
// empty span, and every failure leaves an ast.ExprError in the tree instead of
// aborting. Trailing separators are allowed.
func ParseExpr(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := newParser(toks, arenas, opts)
	p.skipSeparators()
	var root ast.ExprID
	if p.at(token.EOF) {
		root = p.arenas.Exprs.NewInt(source.Span{File: p.current().Span.File}, 0)
	} else {
		root = p.parseStatement(false)
	}
	return p.finish(Result{Root: root})
}

// ParseProgram parses separator-delimited expressions sharing one error budget.
func ParseProgram(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := newParser(toks, arenas, opts)
	var roots []ast.ExprID
	for {
		p.skipSeparators()
		if p.at(token.EOF) {
			break
		}
		roots = append(roots, p.parseStatement(true))
	}
	return p.finish(Result{Roots: roots})
}

// parseStatement parses one expression and checks that it ends at a
// separator (when allowed) or at EOF.
func (p *Parser) parseStatement(multi bool) ast.ExprID {
	mark := p.mark()
	root := p.parseExpr(token.PrecCompare)
	if multi {
		if p.at(token.Separator) || p.at(token.EOF) {
			p.wrap(mark, root, p.spanOf(root), "while parsing this expression")
			return root
		}
	} else {
		p.skipSeparators()
		if p.at(token.EOF) {
			p.wrap(mark, root, p.spanOf(root), "while parsing this expression")
			return root
		}
	}

	tok := p.current()
	wasEnough := p.opts.Enough()
	p.fail(diag.SynUnexpectedToken, tok.Span, "unexpected "+describe(tok)+" after expression")
	switch {
	case wasEnough || !multi:
		p.skipToEnd()
	default:
		for !p.current().IsEnd() {
			p.advance()
		}
	}
	return p.arenas.Exprs.NewError(tok.Span, ast.ErrTrailing, tok.Kind, root)
}

// finish flushes buffered diagnostics to the reporter.
func (p *Parser) finish(res Result) Result {
	for _, d := range p.pending {
		if p.opts.Reporter != nil {
			b := diag.ReportError(p.opts.Reporter, d.Code, d.Primary, d.Message)
			for _, n := range d.Notes {
				b.WithNote(n.Span, n.Msg)
			}
			b.Emit()
		}
	}
	res.Diagnostics = p.pending
	res.Suppressed = p.suppressed
	return res
}

func (p *Parser) current() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.current().Kind == k
}

// advance: съедает текущий токен; на EOF стоит на месте.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) skipSeparators() {
	for p.at(token.Separator) {
		p.advance()
	}
}

// skipToEnd jumps straight to the EOF token.
func (p *Parser) skipToEnd() {
	p.pos = len(p.toks) - 1
}

func (p *Parser) spanOf(id ast.ExprID) source.Span {
	if x := p.arenas.Exprs.Get(id); x != nil {
		return x.Span
	}
	return p.current().Span
}
