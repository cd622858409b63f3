package eval

import "athena/internal/diag"

type Option func(*Evaluator)

// WithSimplify passes every result through Engine.Simplify.
func WithSimplify(on bool) Option {
	return func(ev *Evaluator) { ev.simplify = on }
}

// WithApprox replaces results by binary approximations of prec bits when the
// engine implements engine.Approximator. Zero disables it.
func WithApprox(prec uint) Option {
	return func(ev *Evaluator) { ev.approx = prec }
}

// WithReporter receives warnings for calls that degrade to undefined: unknown
// function names and argument count mismatches.
func WithReporter(r diag.Reporter) Option {
	return func(ev *Evaluator) { ev.reporter = r }
}
