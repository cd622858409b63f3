package engine

import "testing"

func TestFuncNames(t *testing.T) {
	seen := make(map[string]Func)
	for _, f := range Funcs() {
		if !f.Valid() {
			t.Fatalf("%d not valid", f)
		}
		name := f.String()
		if name == "" || name == "unknown" || name == "invalid" {
			t.Fatalf("func %d has no name", f)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("%s shared by %d and %d", name, prev, f)
		}
		seen[name] = f
	}
	if FuncInvalid.Valid() || Func(200).Valid() || Func(200).String() != "unknown" {
		t.Fatal("out of range funcs must be invalid")
	}
}
