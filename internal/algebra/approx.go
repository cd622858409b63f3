package algebra

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"athena/internal/engine"
)

// approx replaces exact numbers and pi by floats of prec bits and folds what
// becomes numeric. Symbols stay symbolic.
func approx(e *Expr, prec uint) *Expr {
	if prec == 0 {
		prec = DefaultPrec
	}
	switch e.kind {
	case KindNum:
		return fltExpr(new(big.Float).SetPrec(prec).SetRat(e.rat))
	case KindFloat:
		return fltExpr(new(big.Float).SetPrec(prec).Set(e.flt))
	case KindConst:
		return fltExpr(bigfloat.Pi(new(big.Float).SetPrec(prec)))
	case KindSum:
		return sum(mapArgs(e.args, func(a *Expr) *Expr { return approx(a, prec) }))
	case KindProd:
		return prod(mapArgs(e.args, func(a *Expr) *Expr { return approx(a, prec) }))
	case KindPow:
		b := approx(e.args[0], prec)
		x := e.args[1]
		if b.isNumeric() || !x.isInt() {
			x = approx(x, prec)
		}
		return pow(b, x)
	case KindFunc:
		return apply(e.fn, mapArgs(e.args, func(a *Expr) *Expr { return approx(a, prec) }))
	}
	return e
}

// guard turns the big.ErrNaN panics of big.Float and bigfloat into an
// undefined result.
func guard(f func() *Expr) (out *Expr) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && errors.As(err, new(big.ErrNaN)) {
			out = undefExpr
			return
		}
		panic(r)
	}()
	return f()
}

// floatPow computes a numeric power where at least one side is a float.
func floatPow(b, x *Expr) *Expr {
	prec := floatPrec(b, x)
	return guard(func() *Expr {
		fb := toFloat(b, prec)
		switch {
		case x.isInt():
			n, ok := x.smallInt()
			if !ok {
				break
			}
			if fb.Sign() == 0 && n < 0 {
				return undefExpr
			}
			return fltExpr(floatIntPow(fb, n, prec))
		case fb.Sign() == 0:
			if x.sign() > 0 {
				return fltExpr(new(big.Float).SetPrec(prec))
			}
			return undefExpr
		case fb.Sign() < 0:
			// no real value for a non-integer power of a negative number
			return undefExpr
		}
		fx := toFloat(x, prec)
		if fx.IsInt() {
			if n, acc := fx.Int64(); acc == big.Exact {
				return fltExpr(floatIntPow(fb, n, prec))
			}
		}
		return fltExpr(bigfloat.Pow(new(big.Float).SetPrec(prec), fb, fx))
	})
}

// floatIntPow computes b^n by repeated squaring.
func floatIntPow(b *big.Float, n int64, prec uint) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	z := new(big.Float).SetPrec(prec).SetInt64(1)
	sq := new(big.Float).SetPrec(prec).Set(b)
	for n > 0 {
		if n&1 == 1 {
			z.Mul(z, sq)
		}
		sq.Mul(sq, sq)
		n >>= 1
	}
	if neg {
		z.Quo(new(big.Float).SetPrec(prec).SetInt64(1), z)
	}
	return z
}

// floatFunc evaluates an elementary function at a float. exp, ln, log10 and
// sqrt keep the argument's precision through bigfloat; trigonometric
// functions go through float64.
func floatFunc(fn engine.Func, x *big.Float) *Expr {
	prec := x.Prec()
	return guard(func() *Expr {
		z := new(big.Float).SetPrec(prec)
		switch fn {
		case engine.FuncExp:
			return fltExpr(bigfloat.Exp(z, x))
		case engine.FuncLn:
			if x.Sign() <= 0 {
				return undefExpr
			}
			return fltExpr(bigfloat.Log(z, x))
		case engine.FuncLog10:
			if x.Sign() <= 0 {
				return undefExpr
			}
			ten := new(big.Float).SetPrec(prec).SetInt64(10)
			lnTen := bigfloat.Log(new(big.Float).SetPrec(prec), ten)
			bigfloat.Log(z, x)
			return fltExpr(z.Quo(z, lnTen))
		case engine.FuncSqrt:
			if x.Sign() < 0 {
				return undefExpr
			}
			return fltExpr(z.Sqrt(x))
		}

		f, _ := x.Float64()
		var r float64
		switch fn {
		case engine.FuncSin:
			r = math.Sin(f)
		case engine.FuncCos:
			r = math.Cos(f)
		case engine.FuncTan:
			r = math.Tan(f)
		case engine.FuncSec:
			r = 1 / math.Cos(f)
		case engine.FuncArcsin:
			r = math.Asin(f)
		case engine.FuncArccos:
			r = math.Acos(f)
		case engine.FuncArctan:
			r = math.Atan(f)
		default:
			return funcExpr(fn, []*Expr{fltExpr(x)})
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return undefExpr
		}
		return fltExpr(z.SetFloat64(r))
	})
}
