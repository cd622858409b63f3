package lexer

import (
	"athena/internal/source"
	"athena/internal/token"
)

// Tokenize scans the whole file and returns its tokens.
//
// The result always ends with exactly one EOF token whose span equals the
// span of the last real token, or the empty span 0..0 when there is none.
// Diagnostics go to opts.Reporter; scanning never stops early except when
// opts.MaxTokens is reached.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/2+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}

	eof := token.Token{Kind: token.EOF, Span: source.Span{File: file.ID}}
	if n := len(toks); n > 0 {
		eof.Span = toks[n-1].Span
	}
	return append(toks, eof)
}
