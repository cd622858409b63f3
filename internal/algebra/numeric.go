package algebra

import (
	"math/big"
)

// DefaultPrec is the float precision used when a float meets an exact number.
const DefaultPrec = 64

func floatPrec(a, b *Expr) uint {
	p := uint(0)
	for _, e := range []*Expr{a, b} {
		if e.kind == KindFloat && e.flt.Prec() > p {
			p = e.flt.Prec()
		}
	}
	if p == 0 {
		return DefaultPrec
	}
	return p
}

// toFloat converts a numeric expression to a new *big.Float of prec bits.
func toFloat(e *Expr, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec)
	switch e.kind {
	case KindNum:
		z.SetRat(e.rat)
	case KindFloat:
		z.Set(e.flt)
	}
	return z
}

func numAdd(a, b *Expr) *Expr {
	if a.kind == KindNum && b.kind == KindNum {
		return ratExpr(new(big.Rat).Add(a.rat, b.rat))
	}
	prec := floatPrec(a, b)
	z := toFloat(a, prec)
	return fltExpr(z.Add(z, toFloat(b, prec)))
}

func numMul(a, b *Expr) *Expr {
	if a.kind == KindNum && b.kind == KindNum {
		return ratExpr(new(big.Rat).Mul(a.rat, b.rat))
	}
	prec := floatPrec(a, b)
	return fltExpr(new(big.Float).SetPrec(prec).Mul(toFloat(a, prec), toFloat(b, prec)))
}

func numNeg(a *Expr) *Expr {
	if a.kind == KindNum {
		return ratExpr(new(big.Rat).Neg(a.rat))
	}
	return fltExpr(new(big.Float).Neg(a.flt))
}

// numCmp compares two numeric expressions.
func numCmp(a, b *Expr) int {
	if a.kind == KindNum && b.kind == KindNum {
		return a.rat.Cmp(b.rat)
	}
	prec := floatPrec(a, b)
	return toFloat(a, prec).Cmp(toFloat(b, prec))
}

// ratPow raises r to the integer power n. r must be non-zero when n < 0.
func ratPow(r *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return new(big.Rat).SetFrac(num, den)
}

// intRoot returns the exact q-th root of a non-negative x, if there is one.
func intRoot(x *big.Int, q uint) (*big.Int, bool) {
	if x.Sign() < 0 || q == 0 {
		return nil, false
	}
	if x.Sign() == 0 || q == 1 {
		return new(big.Int).Set(x), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(x)
		return r, new(big.Int).Mul(r, r).Cmp(x) == 0
	}
	// binary search in [0, 2^(bitlen/q + 1)]
	lo := big.NewInt(0)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(x.BitLen())/q+1)
	bq := big.NewInt(int64(q))
	mid := new(big.Int)
	p := new(big.Int)
	for lo.Cmp(hi) <= 0 {
		mid.Add(lo, hi).Rsh(mid, 1)
		p.Exp(mid, bq, nil)
		switch p.Cmp(x) {
		case 0:
			return new(big.Int).Set(mid), true
		case -1:
			lo.Add(mid, big.NewInt(1))
		default:
			hi.Sub(mid, big.NewInt(1))
		}
	}
	return nil, false
}

// ratRoot returns the exact q-th root of a non-negative rational.
func ratRoot(r *big.Rat, q uint) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num, ok := intRoot(r.Num(), q)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(r.Denom(), q)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

// ratGCD returns the positive gcd of two rationals: gcd of the numerators
// over lcm of the denominators.
func ratGCD(a, b *big.Rat) *big.Rat {
	if a.Sign() == 0 && b.Sign() == 0 {
		return big.NewRat(1, 1)
	}
	an := new(big.Int).Abs(a.Num())
	bn := new(big.Int).Abs(b.Num())
	num := new(big.Int).GCD(nil, nil, an, bn)
	ad, bd := a.Denom(), b.Denom()
	g := new(big.Int).GCD(nil, nil, ad, bd)
	lcm := new(big.Int).Mul(ad, bd)
	lcm.Quo(lcm, g)
	return new(big.Rat).SetFrac(num, lcm)
}
