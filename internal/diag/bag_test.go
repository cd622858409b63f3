package diag

import (
	"strings"
	"testing"

	"athena/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	for i := range 5 {
		r.Report(LexUnknownChar, SevError, source.Span{Start: uint32(i), End: uint32(i + 1)}, "unknown character", nil)
	}
	if bag.Len() != 2 || bag.Dropped() != 3 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestBagUnbounded(t *testing.T) {
	bag := NewBag(0)
	for range 100 {
		bag.Add(NewError(SynBadExpr, source.Span{}, "x"))
	}
	if bag.Len() != 100 {
		t.Fatalf("len=%d", bag.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SynBadExpr, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(New(SevWarning, LexUnknownChar, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewError(SynBadExpr, source.Span{Start: 5, End: 6}, "dup"))
	bag.Sort()
	if bag.Items()[0].Primary.Start != 1 {
		t.Fatalf("unexpected order: %+v", bag.Items())
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("dedup left %d items", bag.Len())
	}
	if bag.HasErrors() != true || bag.HasWarnings() != true {
		t.Fatal("severity queries mismatch")
	}
}

func TestPhaseReporterSplits(t *testing.T) {
	lex, syn, other := NewBag(0), NewBag(0), NewBag(0)
	r := PhaseReporter{Lexer: lex, Syntax: syn, Other: other}
	ReportError(r, LexUnknownChar, source.Span{}, "unknown character").Emit()
	ReportError(r, SynBadExpr, source.Span{}, "expected expression").WithNote(source.Span{}, "bad operand for unary '-'").Emit()
	ReportWarning(r, EvalUnknownFunc, source.Span{}, "unknown function 'f'").Emit()
	if lex.Len() != 1 || syn.Len() != 1 || other.Len() != 1 {
		t.Fatalf("lex=%d syn=%d other=%d", lex.Len(), syn.Len(), other.Len())
	}
	if len(syn.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SynUnclosedParen, source.Span{}, "expected ')'")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("len=%d", bag.Len())
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.Span{}, "x").Emit()
}

func TestCodeIDsAndPhases(t *testing.T) {
	tests := []struct {
		code  Code
		id    string
		phase Phase
	}{
		{LexUnknownChar, "LEX1001", PhaseLexer},
		{LexIntOverflow, "LEX1002", PhaseLexer},
		{SynBadExpr, "SYN2001", PhaseSyntax},
		{EvalArity, "EVL3001", PhaseEval},
		{IOReadError, "IO4001", PhaseIO},
		{UnknownCode, "E0000", PhaseUnknown},
	}
	for _, tt := range tests {
		if tt.code.ID() != tt.id || tt.code.Phase() != tt.phase {
			t.Fatalf("%d: id=%s phase=%s", tt.code, tt.code.ID(), tt.code.Phase())
		}
	}
	if !strings.Contains(SynBadExpr.String(), "Expected expression") {
		t.Fatalf("String() = %q", SynBadExpr.String())
	}
	if Code(1999).Title() != "Unknown error" {
		t.Fatal("unknown title fallback")
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr", []byte("1 +\n* 2"))
	d := NewError(SynBadExpr, source.Span{File: id, Start: 4, End: 5}, "expected expression, found '*'\nmore").
		WithNote(source.Span{File: id, Start: 2, End: 3}, "bad right-hand side for binary '+'")
	got := FormatShortDiagnostics([]Diagnostic{d}, fs, true)
	want := "ERROR SYN2001 expr:2:1 expected expression, found '*'\n  note: expr:1:3 bad right-hand side for binary '+'"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if FormatShortDiagnostics(nil, fs, true) != "" {
		t.Fatal("expected empty output")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(SynBadExpr, SevError, sp, "expected expression", nil)
	r.Report(SynBadExpr, SevError, sp, "expected expression", nil)
	r.Report(SynBadExpr, SevError, source.Span{Start: 3, End: 4}, "expected expression", nil)
	if bag.Len() != 2 {
		t.Fatalf("len=%d", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("suppressed=%d", r.Suppressed())
	}
}
