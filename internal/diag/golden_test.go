package diag

import (
	"testing"

	"athena/internal/source"
)

func TestFormatShortDiagnosticsGolden(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.ath", []byte("x +\n(1"))

	d := NewError(SynUnclosedParen, source.Span{File: id, Start: 4, End: 5}, "unclosed '('\nsecond line")
	d.Notes = []Note{{Span: source.Span{File: id, Start: 0, End: 1}, Msg: "started here"}}
	w := New(SevWarning, LexUnknownChar, source.Span{File: id, Start: 2, End: 3}, "odd")

	got := FormatShortDiagnostics([]Diagnostic{d, w}, fs, true)
	want := "ERROR " + SynUnclosedParen.ID() + " in.ath:2:1 unclosed '('\n" +
		"  note: in.ath:1:1 started here\n" +
		"WARNING " + LexUnknownChar.ID() + " in.ath:1:3 odd"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	if got := FormatShortDiagnostics([]Diagnostic{d}, nil, false); got != "ERROR "+SynUnclosedParen.ID()+" 4..5 unclosed '('" {
		t.Fatalf("without a FileSet: %q", got)
	}
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("empty input: %q", got)
	}
}
