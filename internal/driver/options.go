// Package driver runs the lex, parse and eval pipeline over files and
// in-memory sources, one at a time or as a parallel batch.
package driver

import (
	"athena/internal/algebra"
	"athena/internal/builtins"
	"athena/internal/engine"
	"athena/internal/parser"
)

// DefaultMaxDiagnostics caps each diagnostics list when Options leaves it zero.
const DefaultMaxDiagnostics = 64

// Options configures one pipeline run.
type Options struct {
	// MaxDiagnostics caps each of the lexical, syntax and eval lists.
	MaxDiagnostics int
	// MaxErrors is the syntax error budget of the parser.
	MaxErrors uint
	// MaxTokens stops the lexer; 0 means no limit.
	MaxTokens int
	// Program parses separator-delimited statements instead of one expression.
	Program bool

	Simplify bool
	// Approx replaces exact results by floats of Precision bits.
	Approx    bool
	Precision uint

	// Engine defaults to the reference algebra engine.
	Engine engine.Engine
	// Registry defaults to builtins.Default().
	Registry *builtins.Registry
}

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if o.MaxErrors == 0 {
		o.MaxErrors = parser.DefaultMaxErrors
	}
	if o.Precision == 0 {
		o.Precision = algebra.DefaultPrec
	}
	if o.Engine == nil {
		o.Engine = algebra.New()
	}
	if o.Registry == nil {
		o.Registry = builtins.Default()
	}
	return o
}

// engineName identifies the engine in cache keys.
func engineName(e engine.Engine) string {
	if _, ok := e.(*algebra.Engine); ok {
		return "algebra"
	}
	return "custom"
}
