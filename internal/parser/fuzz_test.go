package parser

import (
	"testing"
)

func FuzzParseExpr(f *testing.F) {
	for _, s := range []string{"", "1+2*3", "(x + 2)^2", "(1 +* 2)", "sin(x", "f(,,)", "--x", ")))", "a;b\nc"} {
		f.Add(s, uint8(1))
	}
	f.Fuzz(func(t *testing.T, s string, budget uint8) {
		limit := uint(budget%8) + 1
		p := parseInput(t, s, limit)
		if uint(len(p.res.Diagnostics)) > limit {
			t.Fatalf("%d diagnostics over budget %d", len(p.res.Diagnostics), limit)
		}
		if p.res.HasErrors() != p.root().HasError {
			t.Fatalf("error flag %v disagrees with diagnostics %v", p.root().HasError, p.res.HasErrors())
		}
	})
}
