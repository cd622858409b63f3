package algebra

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athena/internal/ast"
	"athena/internal/builtins"
	"athena/internal/engine"
	"athena/internal/eval"
	"athena/internal/lexer"
	"athena/internal/parser"
	"athena/internal/source"
	"athena/internal/token"
)

func evalValue(t *testing.T, src string, opts ...eval.Option) engine.Value {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("algebra.ath", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseExpr(lexer.Tokenize(file, lexer.Options{}), b, parser.Options{})
	require.False(t, res.HasErrors(), "parse %q", src)
	v, err := eval.New(New(), builtins.Default(), opts...).Evaluate(context.Background(), b, res.Root)
	require.NoError(t, err)
	return v
}

func evalString(t *testing.T, src string, opts ...eval.Option) string {
	t.Helper()
	return evalValue(t, src, opts...).String()
}

type exactCase struct {
	input string
	want  string
}

func runExact(t *testing.T, cases []exactCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, evalString(t, tt.input))
		})
	}
}

func TestArithmetic(t *testing.T) {
	runExact(t, []exactCase{
		{"1 + 2 * 3", "7"},
		{"2 ^ 10", "1024"},
		{"2 ^ -1", "1/2"},
		{"1 / 3 + 1 / 6", "1/2"},
		{"18446744073709551615", "18446744073709551615"},
		{"x + x", "2 * x"},
		{"x * x", "x^2"},
		{"x - x", "0"},
		{"x / x", "1"},
		{"2 * x + 3 * x", "5 * x"},
		{"x + 1 + 2", "x + 3"},
		{"(x + 1) * 2 - 2 * (x + 1)", "0"},
		{"x ^ 2 * x ^ 3", "x^5"},
		{"(x * y) ^ 2", "x^2 * y^2"},
		{"-x", "-x"},
		{"-(x ^ 2)", "-(x^2)"},
		{"x - y", "x - y"},
		{"a / b", "a / b"},
		{"x / 2", "x / 2"},
		{"2 * pi", "2 * pi"},
	})
}

func TestPowers(t *testing.T) {
	runExact(t, []exactCase{
		{"4 ^ (1 / 2)", "2"},
		{"(8 / 27) ^ (2 / 3)", "4/9"},
		{"sqrt(16)", "4"},
		{"sqrt(2)", "sqrt(2)"},
		{"sqrt(x) ^ 2", "x"},
		{"(x ^ 2) ^ 3", "x^6"},
		{"1 ^ x", "1"},
		{"x ^ 0", "1"},
	})
}

func TestPowerResultSizeIsBounded(t *testing.T) {
	e := New()
	inner := e.Pow(e.Rational(9), e.Rational(maxExactExponent))
	require.Equal(t, KindNum, expr(inner).Kind())

	done := make(chan engine.Value, 1)
	go func() { done <- e.Pow(inner, e.Rational(maxExactExponent)) }()
	var outer engine.Value
	select {
	case outer = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("(9^4096)^4096 is still folding")
	}
	require.Equal(t, KindPow, expr(outer).Kind())
	args := expr(outer).Args()
	require.True(t, args[0].Equal(expr(inner)))
	require.Equal(t, "4096", args[1].String())

	// под пределом степень по-прежнему вычисляется точно
	require.Equal(t, KindNum, expr(e.Pow(e.Rational(1<<32), e.Rational(maxExactExponent))).Kind())
	half := e.Div(e.Rational(1), e.Rational(2))
	root := e.Pow(e.Pow(e.Rational(2), e.Rational(maxExactExponent)), half)
	require.Equal(t, e.Pow(e.Rational(2), e.Rational(maxExactExponent/2)).String(), root.String())
}

func TestUndefinedPropagates(t *testing.T) {
	for _, input := range []string{"1 / 0", "0 ^ 0", "0 ^ -2", "undef + x", "x * undef", "sin(undef)", "ln(0)", "tan(pi / 2)", "deriv(x, 2)"} {
		require.Equal(t, "undef", evalString(t, input), input)
	}
}

func TestElementaryIdentities(t *testing.T) {
	runExact(t, []exactCase{
		{"sin(pi)", "0"},
		{"sin(pi / 2)", "1"},
		{"sin(3 * pi / 2)", "-1"},
		{"cos(pi)", "-1"},
		{"cos(0)", "1"},
		{"sec(0)", "1"},
		{"sin(-x)", "-sin(x)"},
		{"cos(-x)", "cos(x)"},
		{"arcsin(1)", "pi / 2"},
		{"arcsin(-1)", "-pi / 2"},
		{"arccos(-1)", "pi"},
		{"arctan(1)", "pi / 4"},
		{"ln(1)", "0"},
		{"ln(exp(x))", "x"},
		{"exp(ln(y))", "y"},
		{"exp(0)", "1"},
		{"log10(1000)", "3"},
		{"log10(1 / 100)", "-2"},
		{"log10(7)", "log10(7)"},
		{"sin(x)", "sin(x)"},
	})
}

func TestDerivative(t *testing.T) {
	runExact(t, []exactCase{
		{"deriv(x ^ 2, x)", "2 * x"},
		{"deriv(x ^ 3 + 2 * x, x)", "3 * x^2 + 2"},
		{"deriv(sin(x), x)", "cos(x)"},
		{"deriv(cos(x), x)", "-sin(x)"},
		{"deriv(exp(2 * x), x)", "2 * exp(2 * x)"},
		{"deriv(ln(x), x)", "1 / x"},
		{"deriv(x * y, x)", "y"},
		{"deriv(y, x)", "0"},
		{"deriv(5, x)", "0"},
	})
}

func TestStructuralBuiltins(t *testing.T) {
	runExact(t, []exactCase{
		{"numer(x / y)", "x"},
		{"denom(x / y)", "y"},
		{"numer(3 / 4)", "3"},
		{"denom(3 / 4)", "4"},
		{"denom(x)", "1"},
		{"base(x ^ 3)", "x"},
		{"expon(x ^ 3)", "3"},
		{"expon(x)", "1"},
		{"expand((x + 1) ^ 2)", "2 * x + x^2 + 1"},
		{"expand(2 * (x + y))", "2 * x + 2 * y"},
		{"expand(sin((x + 1) ^ 2))", "sin(2 * x + x^2 + 1)"},
		{"expand_main(sin((x + 1) ^ 2))", "sin((x + 1)^2)"},
		{"factor_out(2 * x + 4 * x ^ 2)", "2 * x * (2 * x + 1)"},
		{"common_factor(6 * x ^ 2 * y, 4 * x * y ^ 3)", "2 * x * y"},
		{"cancel((2 * x ^ 2 + 4 * x) / (2 * x))", "x + 2"},
		{"rationalize(1 / x + 1 / y)", "(x + y) / (x * y)"},
		{"reduce(x + x)", "2 * x"},
		{"free_of(x ^ 2 + y, x)", "0"},
		{"free_of(y, x)", "1"},
	})
}

func TestCompare(t *testing.T) {
	runExact(t, []exactCase{
		{"1 < 2", "1"},
		{"2 == 3", "0"},
		{"1 / 2 >= 1 / 3", "1"},
		{"x == x", "1"},
		{"x + 1 > x", "1"},
		{"x < y", "undef"},
	})
	require.Equal(t, undefExpr, compare(token.Plus, oneExpr, oneExpr))
}

func TestPrintedFormReparses(t *testing.T) {
	inputs := []string{
		"x - y", "-(x ^ 2)", "x / 2", "a / b", "1 / x", "-1 / x",
		"rationalize(1 / x + 1 / y)", "sqrt(2) * x", "arcsin(-1)",
		"expand((x + 1) ^ 3)", "(x + 1) ^ (1 / 3)", "2 ^ x / 3", "x ^ (-y)",
	}
	for _, in := range inputs {
		first := evalString(t, in)
		second := evalString(t, first)
		require.Equal(t, first, second, "reparse of %q printed as %q", in, first)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	eng := New()
	for _, in := range []string{"x + x", "deriv(x ^ 3, x)", "(x * y) ^ 2 / x", "sin(x) + 1"} {
		v := evalValue(t, in)
		require.True(t, expr(eng.Simplify(v)).Equal(expr(v)), in)
	}
}

func TestApprox(t *testing.T) {
	eng := New()
	tests := []struct {
		input  string
		prefix string
	}{
		{"pi", "3.1415926535897932"},
		{"sqrt(2)", "1.41421356237309"},
		{"exp(1)", "2.71828182845904"},
		{"sin(1)", "0.84147098480789"},
		{"ln(10)", "2.30258509299404"},
		{"log10(2)", "0.30102999566398"},
		{"1 / 3", "0.3333333333333333"},
		{"2 * pi", "6.283185307179586"},
		{"x + pi", "x + 3.14159265358979"},
	}
	for _, tt := range tests {
		v := eng.Approx(evalValue(t, tt.input), 64)
		require.True(t, strings.HasPrefix(v.String(), tt.prefix), "%s approximates to %s", tt.input, v)
	}

	require.Equal(t, "undef", eng.Approx(evalValue(t, "ln(0)"), 64).String())
	require.Equal(t, "x^2", eng.Approx(evalValue(t, "x ^ 2"), 64).String())

	v := evalString(t, "arccos(0)", eval.WithApprox(53))
	require.True(t, strings.HasPrefix(v, "1.5707963267"), v)
}

func TestFloatDomainErrors(t *testing.T) {
	eng := New()
	neg := eng.Approx(evalValue(t, "0 - 2"), 64)
	require.Equal(t, "undef", eng.Apply(engine.FuncSqrt, []engine.Value{neg}).String())
	require.Equal(t, "undef", eng.Apply(engine.FuncLn, []engine.Value{neg}).String())
	require.Equal(t, "undef", eng.Apply(engine.FuncArcsin, []engine.Value{neg}).String())

	half := eng.Approx(evalValue(t, "1 / 2"), 64)
	f, _ := expr(eng.Apply(engine.FuncArcsin, []engine.Value{half})).flt.Float64()
	require.InDelta(t, math.Pi/6, f, 1e-12)
}

func TestForeignValuesAreUndefined(t *testing.T) {
	eng := New()
	require.True(t, eng.IsUndef(eng.Add(nil, eng.Rational(1))))
	require.True(t, eng.IsUndef(eng.Apply(engine.FuncSin, nil)))
	require.True(t, eng.IsUndef(eng.Apply(engine.FuncInvalid, []engine.Value{eng.Rational(1)})))
}
