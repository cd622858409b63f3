package algebra

import (
	"math/big"

	"athena/internal/engine"
)

var arity = map[engine.Func]int{
	engine.FuncDeriv:        2,
	engine.FuncCommonFactor: 2,
	engine.FuncFreeOf:       2,
}

func arityOf(fn engine.Func) int {
	if n, ok := arity[fn]; ok {
		return n
	}
	return 1
}

// apply evaluates a named function. Calls with the wrong arity, an invalid
// function or an undefined argument are undefined.
func apply(fn engine.Func, args []*Expr) *Expr {
	if !fn.Valid() || len(args) != arityOf(fn) {
		return undefExpr
	}
	for _, a := range args {
		if a.kind == KindUndef {
			return undefExpr
		}
	}
	x := args[0]

	switch fn {
	case engine.FuncSqrt:
		return sqrtOf(x)
	case engine.FuncDeriv:
		return derivative(x, args[1])
	case engine.FuncNumer:
		n, _ := fraction(x)
		return n
	case engine.FuncDenom:
		_, d := fraction(x)
		return d
	case engine.FuncBase:
		b, _ := splitPow(x)
		return b
	case engine.FuncExpon:
		_, e := splitPow(x)
		return e
	case engine.FuncReduce:
		return simplify(x)
	case engine.FuncExpand:
		return expand(x, true)
	case engine.FuncExpandMain:
		return expand(x, false)
	case engine.FuncCancel:
		return cancel(x)
	case engine.FuncRationalize:
		return rationalize(x)
	case engine.FuncFactorOut:
		return factorOut(x)
	case engine.FuncCommonFactor:
		return commonFactor(x, args[1])
	case engine.FuncFreeOf:
		if x.contains(args[1]) {
			return zeroExpr
		}
		return oneExpr
	}

	if x.kind == KindFloat {
		return floatFunc(fn, x.flt)
	}
	return elementary(fn, x)
}

// elementary applies the exact identities of the transcendental functions and
// otherwise keeps the call symbolic.
func elementary(fn engine.Func, x *Expr) *Expr {
	switch fn {
	case engine.FuncSin, engine.FuncTan, engine.FuncArcsin, engine.FuncArctan:
		// odd functions
		if isNegative(x) {
			return neg(elementary(fn, neg(x)))
		}
	case engine.FuncCos, engine.FuncSec:
		// even functions
		if isNegative(x) {
			return elementary(fn, neg(x))
		}
	}

	if k, ok := halfPiMultiple(x); ok {
		if v := trigAtHalfPi(fn, k); v != nil {
			return v
		}
	}

	switch fn {
	case engine.FuncArcsin:
		switch {
		case x.isZero():
			return zeroExpr
		case x.isOne():
			return mul(halfExpr, piExpr)
		}
	case engine.FuncArccos:
		switch {
		case x.isOne():
			return zeroExpr
		case x.isZero():
			return mul(halfExpr, piExpr)
		case x.Equal(minusOne):
			return piExpr
		}
	case engine.FuncArctan:
		switch {
		case x.isZero():
			return zeroExpr
		case x.isOne():
			return mul(ratExpr(big.NewRat(1, 4)), piExpr)
		}
	case engine.FuncLn:
		switch {
		case x.isOne():
			return zeroExpr
		case x.kind == KindNum && x.rat.Sign() <= 0:
			return undefExpr
		case x.kind == KindFunc && x.fn == engine.FuncExp:
			return x.args[0]
		}
	case engine.FuncLog10:
		if x.kind == KindNum {
			if x.rat.Sign() <= 0 {
				return undefExpr
			}
			if n, ok := log10Exact(x.rat); ok {
				return intExpr(n)
			}
		}
	case engine.FuncExp:
		switch {
		case x.isZero():
			return oneExpr
		case x.kind == KindFunc && x.fn == engine.FuncLn:
			return x.args[0]
		}
	}
	return funcExpr(fn, []*Expr{x})
}

// isNegative reports a negative number or a term with a negative coefficient.
func isNegative(e *Expr) bool {
	c, _ := splitCoeff(e)
	return c.sign() < 0
}

// halfPiMultiple matches k*pi/2 for an integer k.
func halfPiMultiple(e *Expr) (int64, bool) {
	if e.isZero() && e.kind == KindNum {
		return 0, true
	}
	c, rest := splitCoeff(e)
	if rest == nil || rest.key != piExpr.key || c.kind != KindNum {
		return 0, false
	}
	twice := new(big.Rat).Mul(c.rat, big.NewRat(2, 1))
	if !twice.IsInt() || !twice.Num().IsInt64() {
		return 0, false
	}
	return twice.Num().Int64(), true
}

// trigAtHalfPi evaluates sin, cos, tan and sec at k*pi/2; nil if fn is not
// one of them. Poles are undefined.
func trigAtHalfPi(fn engine.Func, k int64) *Expr {
	// sin and cos at k*pi/2 cycle with period 4
	m := ((k % 4) + 4) % 4
	sinv := [4]int64{0, 1, 0, -1}[m]
	cosv := [4]int64{1, 0, -1, 0}[m]
	switch fn {
	case engine.FuncSin:
		return intExpr(sinv)
	case engine.FuncCos:
		return intExpr(cosv)
	case engine.FuncTan:
		if cosv == 0 {
			return undefExpr
		}
		return intExpr(sinv * cosv)
	case engine.FuncSec:
		if cosv == 0 {
			return undefExpr
		}
		return intExpr(cosv)
	}
	return nil
}

// log10Exact returns n when r == 10^n.
func log10Exact(r *big.Rat) (int64, bool) {
	ten := big.NewInt(10)
	count := func(x *big.Int) (int64, bool) {
		var n int64
		v := new(big.Int).Set(x)
		m := new(big.Int)
		for v.Cmp(big.NewInt(1)) > 0 {
			v.QuoRem(v, ten, m)
			if m.Sign() != 0 {
				return 0, false
			}
			n++
		}
		return n, v.Cmp(big.NewInt(1)) == 0
	}
	num, ok := count(r.Num())
	if !ok {
		return 0, false
	}
	den, ok := count(r.Denom())
	if !ok || (num != 0 && den != 0) {
		return 0, false
	}
	return num - den, true
}
