// Package algebra is the reference engine.Engine used by the athena CLI.
//
// Values are immutable *Expr trees kept in a canonical form: sums and
// products are flattened n-ary nodes with like terms collected and operands
// sorted, numbers are exact rationals, and integer powers of numbers fold
// exactly. Approximation to binary floats (Approx) is backed by bigfloat.
//
// The engine is stateless and safe for concurrent use.
package algebra
