package algebra

import (
	"math/big"

	"athena/internal/engine"
	"athena/internal/token"
)

// Engine is the reference engine. It holds no state.
type Engine struct{}

var (
	_ engine.Engine       = (*Engine)(nil)
	_ engine.Comparer     = (*Engine)(nil)
	_ engine.Approximator = (*Engine)(nil)
)

func New() *Engine { return &Engine{} }

// expr unwraps a value produced by this package; anything else is undefined.
func expr(v engine.Value) *Expr {
	if e, ok := v.(*Expr); ok && e != nil {
		return e
	}
	return undefExpr
}

func exprs(vs []engine.Value) []*Expr {
	out := make([]*Expr, len(vs))
	for i, v := range vs {
		out[i] = expr(v)
	}
	return out
}

func (*Engine) Rational(v uint64) engine.Value {
	return ratExpr(new(big.Rat).SetUint64(v))
}

func (*Engine) Symbol(name string) engine.Value { return symExpr(name) }
func (*Engine) Pi() engine.Value                { return piExpr }
func (*Engine) Undef() engine.Value             { return undefExpr }

// IsUndef reports whether v is the undefined value.
func (*Engine) IsUndef(v engine.Value) bool { return expr(v).kind == KindUndef }

func (*Engine) Add(a, b engine.Value) engine.Value { return add(expr(a), expr(b)) }
func (*Engine) Sub(a, b engine.Value) engine.Value { return sub(expr(a), expr(b)) }
func (*Engine) Mul(a, b engine.Value) engine.Value { return mul(expr(a), expr(b)) }
func (*Engine) Div(a, b engine.Value) engine.Value { return div(expr(a), expr(b)) }
func (*Engine) Pow(a, b engine.Value) engine.Value { return pow(expr(a), expr(b)) }
func (*Engine) Neg(a engine.Value) engine.Value    { return neg(expr(a)) }

func (*Engine) Apply(fn engine.Func, args []engine.Value) engine.Value {
	return apply(fn, exprs(args))
}

// Simplify rebuilds v bottom-up through the normalizing constructors.
func (*Engine) Simplify(v engine.Value) engine.Value { return simplify(expr(v)) }

func (*Engine) Compare(op token.Kind, a, b engine.Value) engine.Value {
	return compare(op, expr(a), expr(b))
}

func (*Engine) Approx(v engine.Value, prec uint) engine.Value {
	return approx(expr(v), prec)
}

func add(a, b *Expr) *Expr { return sum([]*Expr{a, b}) }
func sub(a, b *Expr) *Expr { return sum([]*Expr{a, neg(b)}) }
func mul(a, b *Expr) *Expr { return prod([]*Expr{a, b}) }
func neg(a *Expr) *Expr    { return prod([]*Expr{minusOne, a}) }
func recip(a *Expr) *Expr  { return pow(a, minusOne) }
func div(a, b *Expr) *Expr { return prod([]*Expr{a, recip(b)}) }
func square(a *Expr) *Expr { return pow(a, intExpr(2)) }
func sqrtOf(a *Expr) *Expr { return pow(a, halfExpr) }

func simplify(e *Expr) *Expr {
	switch e.kind {
	case KindSum:
		return sum(mapArgs(e.args, simplify))
	case KindProd:
		return prod(mapArgs(e.args, simplify))
	case KindPow:
		return pow(simplify(e.args[0]), simplify(e.args[1]))
	case KindFunc:
		return apply(e.fn, mapArgs(e.args, simplify))
	}
	return e
}

func mapArgs(args []*Expr, f func(*Expr) *Expr) []*Expr {
	out := make([]*Expr, len(args))
	for i, a := range args {
		out[i] = f(a)
	}
	return out
}
