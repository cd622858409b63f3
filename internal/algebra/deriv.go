package algebra

import (
	"athena/internal/engine"
)

// derivative differentiates f by the symbol x. Differentiating by anything
// but a symbol is undefined.
func derivative(f, x *Expr) *Expr {
	if x.kind != KindSym {
		return undefExpr
	}
	return diff(f, x)
}

func diff(f, x *Expr) *Expr {
	if f.kind == KindUndef {
		return undefExpr
	}
	if !f.contains(x) {
		return zeroExpr
	}
	switch f.kind {
	case KindSym:
		return oneExpr
	case KindSum:
		return sum(mapArgs(f.args, func(t *Expr) *Expr { return diff(t, x) }))
	case KindProd:
		// product rule over n factors
		terms := make([]*Expr, 0, len(f.args))
		for i := range f.args {
			factors := append([]*Expr(nil), f.args...)
			factors[i] = diff(f.args[i], x)
			terms = append(terms, prod(factors))
		}
		return sum(terms)
	case KindPow:
		b, e := f.args[0], f.args[1]
		db, de := diff(b, x), diff(e, x)
		switch {
		case de.isZero():
			return prod([]*Expr{e, pow(b, sub(e, oneExpr)), db})
		case db.isZero():
			return prod([]*Expr{f, apply(engine.FuncLn, []*Expr{b}), de})
		}
		// d(b^e) = b^e * (e' ln b + e b'/b)
		return mul(f, add(mul(de, apply(engine.FuncLn, []*Expr{b})), mul(e, div(db, b))))
	case KindFunc:
		return chain(f, x)
	}
	return undefExpr
}

func chain(f, x *Expr) *Expr {
	u := f.args[0]
	call := func(fn engine.Func, arg *Expr) *Expr { return apply(fn, []*Expr{arg}) }

	var outer *Expr
	switch f.fn {
	case engine.FuncSin:
		outer = call(engine.FuncCos, u)
	case engine.FuncCos:
		outer = neg(call(engine.FuncSin, u))
	case engine.FuncTan:
		outer = square(call(engine.FuncSec, u))
	case engine.FuncSec:
		outer = mul(call(engine.FuncSec, u), call(engine.FuncTan, u))
	case engine.FuncArcsin:
		outer = recip(sqrtOf(sub(oneExpr, square(u))))
	case engine.FuncArccos:
		outer = neg(recip(sqrtOf(sub(oneExpr, square(u)))))
	case engine.FuncArctan:
		outer = recip(add(oneExpr, square(u)))
	case engine.FuncLn:
		outer = recip(u)
	case engine.FuncLog10:
		outer = recip(mul(u, call(engine.FuncLn, intExpr(10))))
	case engine.FuncExp:
		outer = f
	default:
		return undefExpr
	}
	return mul(outer, diff(u, x))
}
