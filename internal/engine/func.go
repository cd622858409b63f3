package engine

// Func names an engine function reachable from a builtin call.
type Func uint8

const (
	FuncInvalid Func = iota
	FuncSin
	FuncArcsin
	FuncCos
	FuncArccos
	FuncTan
	FuncArctan
	FuncSec
	FuncLn
	FuncLog10
	FuncExp
	FuncSqrt
	FuncDeriv
	FuncNumer
	FuncDenom
	FuncBase
	FuncExpon
	FuncReduce
	FuncExpand
	FuncExpandMain
	FuncCancel
	FuncRationalize
	FuncFactorOut
	FuncCommonFactor
	FuncFreeOf

	funcCount
)

var funcNames = [...]string{
	FuncInvalid:      "invalid",
	FuncSin:          "sin",
	FuncArcsin:       "arcsin",
	FuncCos:          "cos",
	FuncArccos:       "arccos",
	FuncTan:          "tan",
	FuncArctan:       "arctan",
	FuncSec:          "sec",
	FuncLn:           "ln",
	FuncLog10:        "log10",
	FuncExp:          "exp",
	FuncSqrt:         "sqrt",
	FuncDeriv:        "deriv",
	FuncNumer:        "numer",
	FuncDenom:        "denom",
	FuncBase:         "base",
	FuncExpon:        "expon",
	FuncReduce:       "reduce",
	FuncExpand:       "expand",
	FuncExpandMain:   "expand_main",
	FuncCancel:       "cancel",
	FuncRationalize:  "rationalize",
	FuncFactorOut:    "factor_out",
	FuncCommonFactor: "common_factor",
	FuncFreeOf:       "free_of",
}

func (f Func) String() string {
	if f < funcCount {
		return funcNames[f]
	}
	return "unknown"
}

// Valid reports whether f names a real function.
func (f Func) Valid() bool {
	return f > FuncInvalid && f < funcCount
}

// Funcs returns every valid Func in declaration order.
func Funcs() []Func {
	out := make([]Func, 0, funcCount-1)
	for f := FuncInvalid + 1; f < funcCount; f++ {
		out = append(out, f)
	}
	return out
}
