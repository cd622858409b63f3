// Package eval folds a parsed expression tree into calls against an
// engine.Engine.
//
// The fold is structural: identifiers become symbols (except the reserved
// names "undef" and "pi"), integer literals become exact rationals, operators
// lower to the matching engine operation and calls dispatch through a
// builtins.Registry. Trees that contain parse errors are refused before the
// engine is touched.
package eval
