package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"athena/internal/diag"
	"athena/internal/lexer"
	"athena/internal/source"
	"athena/internal/token"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ath", []byte("x +\n  (1 $ 2)"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 9, End: 10}, "Unknown character '$'").
		WithNote(source.Span{File: fileID, Start: 6, End: 7}, "inside this group"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1001" || d.Phase != "lexer" || d.Title != "Unknown character" {
		t.Fatalf("unexpected header fields: %+v", d)
	}
	want := LocationJSON{File: "test.ath", StartByte: 9, EndByte: 10, StartLine: 2, StartCol: 6, EndLine: 2, EndCol: 7}
	if d.Location != want {
		t.Fatalf("location = %+v, want %+v", d.Location, want)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "inside this group" || d.Notes[0].Location.StartCol != 3 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("p.ath", []byte("1 +"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynBadExpr, source.Span{File: fileID, Start: 3, End: 3}, "Expected expression").
		WithNote(source.Span{File: fileID, Start: 2, End: 3}, "after this operator"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 || loc.EndLine != 0 || loc.EndCol != 0 {
		t.Fatalf("positions included: %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes included without IncludeNotes")
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(buf.Bytes(), []byte("start_line")) {
		t.Fatalf("start_line not omitted:\n%s", buf.String())
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.ath", []byte("$$$$$"))
	bag := diag.NewBag(3)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "Unknown character"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	// one recorded entry cut by Max, two never recorded by the bag
	if out.Dropped != 3 {
		t.Fatalf("Dropped = %d, want 3", out.Dropped)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ath", []byte("sin(x) + 42")))
	toks := lexer.Tokenize(file, lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`ident        "sin" at 1:1-1:4`, `integer      "42" at 1:10-1:12 = 42`, "EOF"} {
		if !bytes.Contains(pretty.Bytes(), []byte(want)) {
			t.Fatalf("missing %q in:\n%s", want, pretty.String())
		}
	}

	var raw bytes.Buffer
	if err := FormatTokensJSON(&raw, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(raw.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(decoded), len(toks))
	}
	last := decoded[len(decoded)-1]
	if last.Kind != token.EOF.String() {
		t.Fatalf("last token = %+v", last)
	}
	num := decoded[len(decoded)-2]
	if num.Value == nil || *num.Value != 42 {
		t.Fatalf("integer token lost its value: %+v", num)
	}
}
