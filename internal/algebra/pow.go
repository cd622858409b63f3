package algebra

import (
	"math/big"
)

// maxExactExponent bounds integer powers of numbers folded exactly.
const maxExactExponent = 4096

// maxExactBits bounds the estimated size of an exactly folded power.
const maxExactBits = 1 << 20

// maxRootDegree bounds the q in exact p/q powers of rationals.
const maxRootDegree = 64

// pow builds a normalized power.
func pow(base, exp *Expr) *Expr {
	if base.kind == KindUndef || exp.kind == KindUndef {
		return undefExpr
	}
	if exp.isZero() {
		if base.isZero() {
			return undefExpr
		}
		if exp.kind == KindFloat || base.kind == KindFloat {
			return fltExpr(new(big.Float).SetPrec(floatPrec(base, exp)).SetInt64(1))
		}
		return oneExpr
	}
	if exp.isOne() {
		return base
	}

	if base.isNumeric() && exp.isNumeric() {
		if base.kind == KindFloat || exp.kind == KindFloat {
			return floatPow(base, exp)
		}
		if v, ok := ratPower(base.rat, exp.rat); ok {
			return v
		}
		return powExpr(base, exp)
	}

	if base.isZero() {
		if exp.isNumeric() {
			if exp.sign() > 0 {
				return base
			}
			return undefExpr
		}
		return powExpr(base, exp)
	}
	if base.isOne() {
		return base
	}

	if exp.isInt() {
		switch base.kind {
		case KindPow:
			// (b^e)^n = b^(e*n) for integer n
			return pow(base.args[0], mul(base.args[1], exp))
		case KindProd:
			factors := make([]*Expr, len(base.args))
			for i, f := range base.args {
				factors[i] = pow(f, exp)
			}
			return prod(factors)
		}
	}
	return powExpr(base, exp)
}

// ratPower folds b^e for rationals when the result is rational, or reports
// an undefined result as undefExpr.
func ratPower(b, e *big.Rat) (*Expr, bool) {
	if b.Sign() == 0 {
		if e.Sign() < 0 {
			return undefExpr, true
		}
		return zeroExpr, true
	}
	if !e.Denom().IsInt64() || !e.Num().IsInt64() {
		return nil, false
	}
	p, q := e.Num().Int64(), e.Denom().Int64()
	if p > maxExactExponent || p < -maxExactExponent {
		return nil, false
	}
	// b^(p/q) takes about bits(b)*|p|/q bits
	bits := int64(max(b.Num().BitLen(), b.Denom().BitLen()))
	if bits*max(p, -p)/q > maxExactBits {
		return nil, false
	}
	if q == 1 {
		return ratExpr(ratPow(b, p)), true
	}
	if q > maxRootDegree || b.Sign() < 0 {
		return nil, false
	}
	root, ok := ratRoot(b, uint(q))
	if !ok {
		return nil, false
	}
	return ratExpr(ratPow(root, p)), true
}
