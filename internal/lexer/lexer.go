package lexer

import (
	"athena/internal/diag"
	"athena/internal/source"
	"athena/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token // 1 элементный буфер для токена
	emitted int
	stopped bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен. Пробелы и комментарии пропускаются,
// нераспознанные символы репортятся и тоже пропускаются.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		lx.skipTrivia()
		if lx.stopped || lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		if lx.opts.MaxTokens > 0 && lx.emitted >= lx.opts.MaxTokens {
			lx.report(lx.restSpan(), diag.LexTokenLimit, "too many tokens, input truncated")
			lx.stopped = true
			continue
		}

		tok, ok := lx.scan()
		if !ok {
			continue
		}
		lx.emitted++
		return tok
	}
}

// scan dispatches on the current byte. ok is false when the run was
// reported as an error and produced no token.
func (lx *Lexer) scan() (token.Token, bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdent()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '\n' || ch == ';':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Separator, start), true
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) restSpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.limit()}
}
