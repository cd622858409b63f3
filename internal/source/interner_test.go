package source

import "testing"

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	b := in.Intern("y")
	if a == NoStringID || b == NoStringID || a == b {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("x"); again != a {
		t.Fatalf("re-intern gave %d, want %d", again, a)
	}
	if s := in.MustLookup(b); s != "y" {
		t.Fatalf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d", in.Len())
	}
	if snap := in.Snapshot(); len(snap) != 3 || snap[0] != "" {
		t.Fatalf("snapshot = %v", snap)
	}
}
