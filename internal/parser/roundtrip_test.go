package parser

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"athena/internal/ast"
)

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"(a - b) - (c - d)",
		"-x ^ 2",
		"2 ^ 3 ^ 2",
		"(2 ^ 3) ^ 2",
		"a / (b * c)",
		"+(x)",
		"((1))",
		"x - -y",
		"(x + 2)^2",
		"1-2+3*4/5^6^7",
	}
	for _, in := range inputs {
		assertRoundTrip(t, in)
	}
}

func TestRenderRoundTripGenerated(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 300 {
		assertRoundTrip(t, genExpr(rng, 4))
	}
}

func assertRoundTrip(t *testing.T, input string) {
	t.Helper()
	first := parseInput(t, input, 0)
	if first.res.HasErrors() {
		t.Fatalf("%q: %s", input, diagnosticsSummary(first.res.Diagnostics))
	}
	rendered := ast.Render(first.b, first.res.Root)
	second := parseInput(t, rendered, 0)
	if second.res.HasErrors() {
		t.Fatalf("rendered %q does not parse: %s", rendered, diagnosticsSummary(second.res.Diagnostics))
	}
	if a, b := first.dump(), second.dump(); a != b {
		t.Fatalf("round trip of %q via %q:\n  %s\n  %s", input, rendered, a, b)
	}
	if again := ast.Render(second.b, second.res.Root); again != rendered {
		t.Fatalf("render is not stable: %q vs %q", rendered, again)
	}
}

var genOps = []string{"+", "-", "*", "/", "^"}

// genExpr builds random source text from + - * / ^ ( ), identifiers and integers.
func genExpr(rng *rand.Rand, depth int) string {
	if depth == 0 || rng.IntN(4) == 0 {
		return genLeaf(rng)
	}
	switch rng.IntN(5) {
	case 0:
		return "(" + genExpr(rng, depth-1) + ")"
	case 1:
		return "-" + genOperand(rng, depth-1)
	default:
		var sb strings.Builder
		sb.WriteString(genExpr(rng, depth-1))
		for range rng.IntN(3) + 1 {
			sb.WriteString(" " + genOps[rng.IntN(len(genOps))] + " ")
			sb.WriteString(genOperand(rng, depth-1))
		}
		return sb.String()
	}
}

func genOperand(rng *rand.Rand, depth int) string {
	if depth > 0 && rng.IntN(2) == 0 {
		return "(" + genExpr(rng, depth-1) + ")"
	}
	return genLeaf(rng)
}

func genLeaf(rng *rand.Rand) string {
	if rng.IntN(2) == 0 {
		return string(rune('a' + rng.IntN(4)))
	}
	return strconv.Itoa(rng.IntN(100))
}
