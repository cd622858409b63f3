package algebra

import (
	"math/big"
)

// maxExpandPower bounds the integer powers of sums that expand multiplies out.
const maxExpandPower = 32

// fraction splits e into numerator and denominator. Factors with negative
// numeric exponents and rational coefficients contribute to the denominator.
func fraction(e *Expr) (num, den *Expr) {
	switch e.kind {
	case KindNum:
		return ratExpr(new(big.Rat).SetInt(e.rat.Num())), ratExpr(new(big.Rat).SetInt(e.rat.Denom()))
	case KindPow:
		if exp := e.args[1]; exp.isNumeric() && exp.sign() < 0 {
			return oneExpr, pow(e.args[0], numNeg(exp))
		}
	case KindProd:
		var nums, dens []*Expr
		for _, f := range e.args {
			n, d := fraction(f)
			nums = append(nums, n)
			dens = append(dens, d)
		}
		return prod(nums), prod(dens)
	}
	return e, oneExpr
}

// expand distributes products over sums and multiplies out small positive
// integer powers of sums. With deep unset only the top level is rewritten:
// operands and function arguments are left as they are.
func expand(e *Expr, deep bool) *Expr {
	rec := func(x *Expr) *Expr { return expand(x, deep) }
	switch e.kind {
	case KindSum:
		return sum(mapArgs(e.args, rec))
	case KindProd:
		factors := e.args
		if deep {
			factors = mapArgs(factors, rec)
		}
		return distribute(factors)
	case KindPow:
		base, exp := e.args[0], e.args[1]
		if deep {
			base, exp = rec(base), rec(exp)
		}
		if n, ok := exp.smallInt(); ok && n > 1 && n <= maxExpandPower && base.kind == KindSum {
			factors := make([]*Expr, n)
			for i := range factors {
				factors[i] = base
			}
			return distribute(factors)
		}
		return pow(base, exp)
	case KindFunc:
		if deep {
			return apply(e.fn, mapArgs(e.args, rec))
		}
	}
	return e
}

func distribute(factors []*Expr) *Expr {
	terms := []*Expr{oneExpr}
	for _, f := range factors {
		var next []*Expr
		if f.kind == KindSum {
			next = make([]*Expr, 0, len(terms)*len(f.args))
			for _, t := range terms {
				for _, s := range f.args {
					next = append(next, mul(t, s))
				}
			}
		} else {
			next = make([]*Expr, len(terms))
			for i, t := range terms {
				next[i] = mul(t, f)
			}
		}
		terms = next
	}
	return sum(terms)
}

// cancel rewrites e as one fraction and removes the monomial factors common
// to the expanded numerator and denominator.
func cancel(e *Expr) *Expr {
	n, d := fraction(e)
	return div(factorOut(expand(n, true)), factorOut(expand(d, true)))
}

// rationalize brings the terms of a sum over a common denominator.
func rationalize(e *Expr) *Expr {
	if e.kind != KindSum {
		return e
	}
	nums := make([]*Expr, len(e.args))
	dens := make([]*Expr, len(e.args))
	trivial := true
	for i, t := range e.args {
		nums[i], dens[i] = fraction(t)
		trivial = trivial && dens[i].isOne()
	}
	if trivial {
		return e
	}
	terms := make([]*Expr, len(nums))
	for i, n := range nums {
		factors := []*Expr{n}
		for j, d := range dens {
			if j != i {
				factors = append(factors, d)
			}
		}
		terms[i] = prod(factors)
	}
	return div(sum(terms), prod(dens))
}

// factorOut pulls the factor common to every term of a sum in front of it.
func factorOut(e *Expr) *Expr {
	if e.kind != KindSum {
		return e
	}
	c := e.args[0]
	for _, t := range e.args[1:] {
		c = commonFactor(c, t)
	}
	if c.isOne() {
		return e
	}
	inner := make([]*Expr, len(e.args))
	for i, t := range e.args {
		inner[i] = div(t, c)
	}
	return mul(c, sum(inner))
}

type powFactor struct {
	base, exp *Expr
}

func factorsOf(e *Expr) (order []string, m map[string]powFactor) {
	m = make(map[string]powFactor)
	if e == nil {
		return nil, m
	}
	list := []*Expr{e}
	if e.kind == KindProd {
		list = e.args
	}
	for _, f := range list {
		b, x := splitPow(f)
		order = append(order, b.key)
		m[b.key] = powFactor{b, x}
	}
	return order, m
}

// commonFactor returns the greatest monomial dividing both a and b: the gcd
// of the rational coefficients times the shared bases at their smaller
// exponent.
func commonFactor(a, b *Expr) *Expr {
	ca, ra := splitCoeff(a)
	cb, rb := splitCoeff(b)
	coeff := oneExpr
	if ca.kind == KindNum && cb.kind == KindNum {
		coeff = ratExpr(ratGCD(ca.rat, cb.rat))
	}

	order, fa := factorsOf(ra)
	_, fb := factorsOf(rb)
	common := []*Expr{coeff}
	for _, k := range order {
		pa := fa[k]
		pb, ok := fb[k]
		if !ok {
			continue
		}
		switch {
		case pa.exp.isNumeric() && pb.exp.isNumeric():
			m := pa.exp
			if numCmp(pb.exp, m) < 0 {
				m = pb.exp
			}
			if m.sign() > 0 {
				common = append(common, pow(pa.base, m))
			}
		case pa.exp.Equal(pb.exp):
			common = append(common, pow(pa.base, pa.exp))
		}
	}
	return prod(common)
}
