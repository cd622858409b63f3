package algebra

import (
	"athena/internal/token"
)

// compare decides a comparison as 1 or 0 when the difference of the operands
// folds to a number, and is undefined otherwise.
func compare(op token.Kind, a, b *Expr) *Expr {
	if a.kind == KindUndef || b.kind == KindUndef || !op.IsComparison() {
		return undefExpr
	}
	var c int
	switch {
	case a.isNumeric() && b.isNumeric():
		c = numCmp(a, b)
	case a.Equal(b):
		c = 0
	default:
		d := sub(a, b)
		if !d.isNumeric() {
			return undefExpr
		}
		c = d.sign()
	}

	var ok bool
	switch op {
	case token.EqEq:
		ok = c == 0
	case token.Lt:
		ok = c < 0
	case token.LtEq:
		ok = c <= 0
	case token.Gt:
		ok = c > 0
	case token.GtEq:
		ok = c >= 0
	}
	if ok {
		return oneExpr
	}
	return zeroExpr
}
