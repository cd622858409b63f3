package parser

import (
	"fmt"
	"strings"
	"testing"

	"athena/internal/ast"
	"athena/internal/diag"
	"athena/internal/lexer"
	"athena/internal/source"
	"athena/internal/testkit"
)

type parsed struct {
	b    *ast.Builder
	file *source.File
	res  Result
	bag  *diag.Bag
}

func parseInput(t testing.TB, input string, maxErrors uint) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ath", []byte(input)))
	bag := diag.NewBag(0)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseExpr(toks, b, Options{MaxErrors: maxErrors, Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckTreeInvariants(b, res.Root, file); err != nil {
		t.Fatalf("%q: tree invariants: %v", input, err)
	}
	return parsed{b: b, file: file, res: res, bag: bag}
}

func (p parsed) dump() string { return ast.Dump(p.b, p.res.Root) }

func (p parsed) root() *ast.Expr { return p.b.Exprs.Get(p.res.Root) }

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
