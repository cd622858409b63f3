package algebra

import (
	"math/big"
	"strings"

	"athena/internal/engine"
)

// Kind classifies an Expr.
type Kind uint8

const (
	KindUndef Kind = iota
	KindNum        // exact rational
	KindFloat      // binary approximation
	KindConst      // pi
	KindSym
	KindSum
	KindProd
	KindPow
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindUndef:
		return "undef"
	case KindNum:
		return "num"
	case KindFloat:
		return "float"
	case KindConst:
		return "const"
	case KindSym:
		return "sym"
	case KindSum:
		return "sum"
	case KindProd:
		return "prod"
	case KindPow:
		return "pow"
	case KindFunc:
		return "func"
	}
	return "unknown"
}

// Expr is an immutable algebraic expression. The zero value is not usable;
// values come from an Engine.
type Expr struct {
	kind Kind
	rat  *big.Rat    // KindNum
	flt  *big.Float  // KindFloat
	name string      // KindSym, KindConst
	fn   engine.Func // KindFunc
	// KindSum, KindProd: operands in canonical order.
	// KindPow: base, exponent. KindFunc: arguments.
	args []*Expr
	// key is a structural encoding: equal keys mean equal expressions.
	key string
}

func (e *Expr) Kind() Kind { return e.kind }

// Args returns a copy of the operands.
func (e *Expr) Args() []*Expr { return append([]*Expr(nil), e.args...) }

// Rat returns a copy of the exact value of a KindNum expression.
func (e *Expr) Rat() (*big.Rat, bool) {
	if e.kind != KindNum {
		return nil, false
	}
	return new(big.Rat).Set(e.rat), true
}

// Equal reports structural equality.
func (e *Expr) Equal(o *Expr) bool { return e.key == o.key }

var (
	undefExpr = &Expr{kind: KindUndef, key: "?"}
	piExpr    = &Expr{kind: KindConst, name: "pi", key: "@pi"}
	zeroExpr  = ratExpr(new(big.Rat))
	oneExpr   = ratExpr(big.NewRat(1, 1))
	minusOne  = ratExpr(big.NewRat(-1, 1))
	halfExpr  = ratExpr(big.NewRat(1, 2))
)

// ratExpr takes ownership of r.
func ratExpr(r *big.Rat) *Expr {
	return &Expr{kind: KindNum, rat: r, key: "#" + r.RatString()}
}

func intExpr(n int64) *Expr { return ratExpr(new(big.Rat).SetInt64(n)) }

// fltExpr takes ownership of f.
func fltExpr(f *big.Float) *Expr {
	return &Expr{kind: KindFloat, flt: f, key: "~" + f.Text('p', 0)}
}

func symExpr(name string) *Expr {
	return &Expr{kind: KindSym, name: name, key: "$" + name}
}

func nodeExpr(kind Kind, tag string, args []*Expr) *Expr {
	var sb strings.Builder
	sb.WriteString(tag)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.key)
	}
	sb.WriteByte(')')
	return &Expr{kind: kind, args: args, key: sb.String()}
}

func powExpr(base, exp *Expr) *Expr { return nodeExpr(KindPow, "^", []*Expr{base, exp}) }

func funcExpr(fn engine.Func, args []*Expr) *Expr {
	e := nodeExpr(KindFunc, fn.String(), args)
	e.fn = fn
	return e
}

func (e *Expr) isNumeric() bool { return e.kind == KindNum || e.kind == KindFloat }

func (e *Expr) isZero() bool {
	switch e.kind {
	case KindNum:
		return e.rat.Sign() == 0
	case KindFloat:
		return e.flt.Sign() == 0
	}
	return false
}

func (e *Expr) isOne() bool {
	return e.kind == KindNum && e.rat.IsInt() && e.rat.Num().IsInt64() && e.rat.Num().Int64() == 1
}

func (e *Expr) isInt() bool { return e.kind == KindNum && e.rat.IsInt() }

// sign returns the sign of a numeric expression, 0 otherwise.
func (e *Expr) sign() int {
	switch e.kind {
	case KindNum:
		return e.rat.Sign()
	case KindFloat:
		return e.flt.Sign()
	}
	return 0
}

// smallInt returns the value of an integer that fits in an int64.
func (e *Expr) smallInt() (int64, bool) {
	if !e.isInt() || !e.rat.Num().IsInt64() {
		return 0, false
	}
	return e.rat.Num().Int64(), true
}

// contains reports whether sub occurs anywhere in e.
func (e *Expr) contains(sub *Expr) bool {
	if e.key == sub.key {
		return true
	}
	for _, a := range e.args {
		if a.contains(sub) {
			return true
		}
	}
	return false
}
