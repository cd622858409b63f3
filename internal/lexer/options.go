package lexer

import (
	"athena/internal/diag"
	"athena/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokens stops the scan after that many tokens; 0 means no limit.
	MaxTokens int
}

func (lx *Lexer) report(sp source.Span, code diag.Code, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
