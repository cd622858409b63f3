package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint left-right", Span{Start: 1, End: 3}, Span{Start: 5, End: 9}, Span{Start: 1, End: 9}},
		{"disjoint right-left", Span{Start: 5, End: 9}, Span{Start: 1, End: 3}, Span{Start: 1, End: 9}},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 2, End: 4}, Span{Start: 0, End: 10}},
		{"empty with range", Span{Start: 4, End: 4}, Span{Start: 0, End: 2}, Span{Start: 0, End: 4}},
		{"other file ignored", Span{File: 1, Start: 4, End: 6}, Span{File: 2, Start: 0, End: 20}, Span{File: 1, Start: 4, End: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Fatalf("Cover(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSpan_CoverIsCommutativeOnSameFile(t *testing.T) {
	a := Span{Start: 3, End: 7}
	b := Span{Start: 5, End: 12}
	if a.Cover(b) != b.Cover(a) {
		t.Fatalf("Cover is not commutative: %v vs %v", a.Cover(b), b.Cover(a))
	}
}

func TestSpan_TextClamps(t *testing.T) {
	content := []byte("(x + 2)^2")
	if got := (Span{Start: 0, End: 7}).Text(content); got != "(x + 2)" {
		t.Fatalf("Text = %q", got)
	}
	if got := (Span{Start: 7, End: 100}).Text(content); got != "^2" {
		t.Fatalf("Text past end = %q", got)
	}
	if got := (Span{Start: 50, End: 60}).Text(content); got != "" {
		t.Fatalf("Text out of range = %q", got)
	}
}

func TestSpan_LenAndContains(t *testing.T) {
	outer := Span{Start: 2, End: 10}
	if outer.Len() != 8 {
		t.Fatalf("Len = %d", outer.Len())
	}
	if !outer.Contains(Span{Start: 2, End: 10}) || outer.Contains(Span{Start: 1, End: 3}) {
		t.Fatal("Contains mismatch")
	}
	if !(Span{Start: 5, End: 5}).Empty() {
		t.Fatal("expected empty span")
	}
}
