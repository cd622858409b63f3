package builtins

import "athena/internal/engine"

func unary(name string, fn engine.Func) Descriptor {
	return Descriptor{Name: name, Params: []string{"x"}, Fn: fn}
}

// Standard returns a fresh copy of the standard builtin table.
func Standard() []Descriptor {
	return []Descriptor{
		unary("sin", engine.FuncSin),
		unary("arcsin", engine.FuncArcsin),
		unary("cos", engine.FuncCos),
		unary("arccos", engine.FuncArccos),
		unary("tan", engine.FuncTan),
		unary("arctan", engine.FuncArctan),
		unary("sec", engine.FuncSec),
		unary("ln", engine.FuncLn),
		unary("log10", engine.FuncLog10),
		unary("exp", engine.FuncExp),
		unary("sqrt", engine.FuncSqrt),
		{Name: "deriv", Params: []string{"f", "x"}, Fn: engine.FuncDeriv},
		{Name: "numer", Params: []string{"frac"}, Fn: engine.FuncNumer},
		{Name: "denom", Params: []string{"frac"}, Fn: engine.FuncDenom},
		{Name: "base", Params: []string{"power"}, Fn: engine.FuncBase},
		{Name: "expon", Params: []string{"power"}, Fn: engine.FuncExpon},
		unary("reduce", engine.FuncReduce),
		unary("expand", engine.FuncExpand),
		unary("expand_main", engine.FuncExpandMain),
		unary("cancel", engine.FuncCancel),
		unary("rationalize", engine.FuncRationalize),
		unary("factor_out", engine.FuncFactorOut),
		{Name: "common_factor", Params: []string{"a", "b"}, Fn: engine.FuncCommonFactor},
		{Name: "free_of", Params: []string{"expr", "x"}, Fn: engine.FuncFreeOf},
	}
}
