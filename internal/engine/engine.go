// Package engine is the boundary between the evaluator and a symbolic-algebra
// backend. The front end never simplifies anything itself: every value is
// built and combined through an Engine.
package engine

import "athena/internal/token"

// Value is an opaque expression owned by an Engine. Values from different
// engines must not be mixed.
type Value interface {
	String() string
}

// Engine builds and combines values. Implementations must be safe for
// concurrent use when shared across batch workers.
type Engine interface {
	// Rational returns the exact integer v.
	Rational(v uint64) Value
	Symbol(name string) Value
	Pi() Value
	// Undef returns the undefined sentinel. Every operation given an
	// undefined operand must return it again.
	Undef() Value

	Add(a, b Value) Value
	Sub(a, b Value) Value
	Mul(a, b Value) Value
	Div(a, b Value) Value
	Pow(a, b Value) Value
	Neg(a Value) Value

	// Apply calls a named function. len(args) always matches the arity the
	// registry declares for fn.
	Apply(fn Func, args []Value) Value

	// Simplify returns a normalized form of v.
	Simplify(v Value) Value
}

// Comparer is implemented by engines that can decide comparisons.
// op is one of token.EqEq, token.Lt, token.LtEq, token.Gt, token.GtEq.
type Comparer interface {
	Compare(op token.Kind, a, b Value) Value
}

// Approximator is implemented by engines that can replace exact values with
// binary floating-point approximations of prec bits.
type Approximator interface {
	Approx(v Value, prec uint) Value
}

