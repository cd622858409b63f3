package parser

import "athena/internal/token"

// binaryBinding returns the precedence of k and the minimum precedence for
// its right-hand side. ok is false when k is not a binary operator.
// Left-associative operators bind their right side one level tighter;
// '^' is right-associative and keeps its own level.
func binaryBinding(k token.Kind) (prec, rhsMin int, ok bool) {
	prec = k.Precedence()
	if prec == token.PrecNone {
		return 0, 0, false
	}
	if k.RightAssoc() {
		return prec, prec, true
	}
	return prec, prec + 1, true
}
