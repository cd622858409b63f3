package eval

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"athena/internal/ast"
	"athena/internal/builtins"
	"athena/internal/diag"
	"athena/internal/engine"
	"athena/internal/lexer"
	"athena/internal/parser"
	"athena/internal/source"
	"athena/internal/token"
	"athena/internal/trace"
)

var std = builtins.Default()

type val string

func (v val) String() string { return string(v) }

// recorder renders every value in prefix form and logs each engine call.
type recorder struct {
	calls []string
}

func (r *recorder) log(s string) engine.Value {
	r.calls = append(r.calls, s)
	return val(s)
}

func (r *recorder) op(name string, args ...engine.Value) engine.Value {
	parts := []string{name}
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return r.log("(" + strings.Join(parts, " ") + ")")
}

func (r *recorder) Rational(v uint64) engine.Value       { return r.log(strconv.FormatUint(v, 10)) }
func (r *recorder) Symbol(name string) engine.Value      { return r.log(name) }
func (r *recorder) Pi() engine.Value                     { return r.log("PI") }
func (r *recorder) Undef() engine.Value                  { return r.log("UNDEF") }
func (r *recorder) Add(a, b engine.Value) engine.Value   { return r.op("add", a, b) }
func (r *recorder) Sub(a, b engine.Value) engine.Value   { return r.op("sub", a, b) }
func (r *recorder) Mul(a, b engine.Value) engine.Value   { return r.op("mul", a, b) }
func (r *recorder) Div(a, b engine.Value) engine.Value   { return r.op("div", a, b) }
func (r *recorder) Pow(a, b engine.Value) engine.Value   { return r.op("pow", a, b) }
func (r *recorder) Neg(a engine.Value) engine.Value      { return r.op("neg", a) }
func (r *recorder) Simplify(v engine.Value) engine.Value { return r.op("simp", v) }

func (r *recorder) Apply(fn engine.Func, args []engine.Value) engine.Value {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return r.log(fn.String() + "(" + strings.Join(parts, ",") + ")")
}

// comparing adds engine.Comparer and engine.Approximator.
type comparing struct{ recorder }

func (c *comparing) Compare(op token.Kind, a, b engine.Value) engine.Value {
	return c.op("cmp"+op.String(), a, b)
}

func (c *comparing) Approx(v engine.Value, prec uint) engine.Value {
	return c.op("approx"+strconv.FormatUint(uint64(prec), 10), v)
}

func parse(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("eval.ath", []byte(input)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseExpr(lexer.Tokenize(file, lexer.Options{}), b, parser.Options{})
	return b, res.Root
}

func TestFoldLowering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(add 1 (mul 2 3))"},
		{"x - y", "(sub x y)"},
		{"a / b", "(div a b)"},
		{"2 ^ 3 ^ 2", "(pow 2 (pow 3 2))"},
		{"-x", "(neg x)"},
		{"-x ^ 2", "(pow (neg x) 2)"},
		{"+x", "x"},
		{"((x))", "x"},
		{"pi * r ^ 2", "(mul PI (pow r 2))"},
		{"undef + 1", "(add UNDEF 1)"},
		{"sin(x)", "sin(x)"},
		{"deriv(x ^ 2, x)", "deriv((pow x 2),x)"},
		{"free_of(y, x)", "free_of(y,x)"},
		{"a < b", "UNDEF"},
		{"", "0"},
		{"18446744073709551615", "18446744073709551615"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, root := parse(t, tt.input)
			v, err := New(&recorder{}, std).Evaluate(context.Background(), b, root)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if v.String() != tt.want {
				t.Fatalf("got %s, want %s", v, tt.want)
			}
		})
	}
}

func TestOperandsFoldLeftToRight(t *testing.T) {
	b, root := parse(t, "f1 * f2 + g(a, b)")
	eng := &recorder{}
	if _, err := New(eng, std).Evaluate(context.Background(), b, root); err != nil {
		t.Fatal(err)
	}
	// unknown g: its arguments are never folded
	want := []string{"f1", "f2", "(mul f1 f2)", "UNDEF", "(add (mul f1 f2) UNDEF)"}
	if strings.Join(eng.calls, " | ") != strings.Join(want, " | ") {
		t.Fatalf("calls = %q", eng.calls)
	}
}

func TestBuiltinCalledOnce(t *testing.T) {
	b, root := parse(t, "sin(x)")
	eng := &recorder{}
	v, err := New(eng, std).Evaluate(context.Background(), b, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "sin(x)" {
		t.Fatalf("got %s", v)
	}
	applied := 0
	for _, c := range eng.calls {
		if strings.HasPrefix(c, "sin(") {
			applied++
		}
	}
	if applied != 1 || strings.Join(eng.calls, " | ") != "x | sin(x)" {
		t.Fatalf("calls = %q, want x then one sin", eng.calls)
	}
}

func TestNewRequiresRegistry(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New accepted a nil registry")
		}
	}()
	New(&recorder{}, nil)
}

func TestComparisonsUseComparer(t *testing.T) {
	b, root := parse(t, "a <= b + 1")
	v, err := New(&comparing{}, std).Evaluate(context.Background(), b, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "(cmp<= a (add b 1))" {
		t.Fatalf("got %s", v)
	}
}

func TestRefusesErroneousTrees(t *testing.T) {
	for _, input := range []string{"(1 +* 2)", "1 2", "sin(x", "--x"} {
		b, root := parse(t, input)
		eng := &recorder{}
		v, err := New(eng, std).Evaluate(context.Background(), b, root)
		if !errors.Is(err, ErrHasErrors) || v != nil {
			t.Fatalf("%q: v=%v err=%v", input, v, err)
		}
		if len(eng.calls) != 0 {
			t.Fatalf("%q: engine touched: %v", input, eng.calls)
		}
	}
}

func TestNoRoot(t *testing.T) {
	ev := New(&recorder{}, std)
	if _, err := ev.Evaluate(context.Background(), nil, 1); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("nil builder: %v", err)
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	if _, err := ev.Evaluate(context.Background(), b, ast.NoExprID); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("NoExprID: %v", err)
	}
}

func TestCallDegradesToUndef(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
		msg   string
	}{
		{"foo(1)", diag.EvalUnknownFunc, "unknown function 'foo'"},
		{"sin(1, 2)", diag.EvalArity, "sin(x) takes 1 argument(s), got 2"},
		{"deriv(x)", diag.EvalArity, "deriv(f, x) takes 2 argument(s), got 1"},
	}
	for _, tt := range tests {
		b, root := parse(t, tt.input)
		bag := diag.NewBag(0)
		eng := &recorder{}
		v, err := New(eng, std, WithReporter(diag.BagReporter{Bag: bag})).Evaluate(context.Background(), b, root)
		if err != nil || v.String() != "UNDEF" {
			t.Fatalf("%q: v=%v err=%v", tt.input, v, err)
		}
		for _, c := range eng.calls {
			if strings.Contains(c, "(") {
				t.Fatalf("%q: engine function reached: %v", tt.input, eng.calls)
			}
		}
		if bag.Len() != 1 || bag.Items()[0].Code != tt.code || bag.Items()[0].Message != tt.msg {
			t.Fatalf("%q: warnings = %+v", tt.input, bag.Items())
		}
		if bag.Items()[0].Severity != diag.SevWarning {
			t.Fatalf("%q: severity %s", tt.input, bag.Items()[0].Severity)
		}
	}
}

func TestSimplifyAndApprox(t *testing.T) {
	b, root := parse(t, "x + 1")
	v, err := New(&comparing{}, std, WithSimplify(true), WithApprox(64)).Evaluate(context.Background(), b, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "(approx64 (simp (add x 1)))" {
		t.Fatalf("got %s", v)
	}

	// engines without Approximator keep the exact value
	v, _ = New(&recorder{}, std, WithApprox(64)).Evaluate(context.Background(), b, root)
	if v.String() != "(add x 1)" {
		t.Fatalf("got %s", v)
	}
}

func TestCancellation(t *testing.T) {
	b, root := parse(t, "a + b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := &recorder{}
	if _, err := New(eng, std).Evaluate(ctx, b, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if len(eng.calls) != 0 {
		t.Fatalf("engine touched after cancel: %v", eng.calls)
	}
}

func TestUnknownOperatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f := folder{Evaluator: New(&recorder{}, std)}
	f.binary(token.Assign, val("a"), val("b"))
}

func TestNodeTracing(t *testing.T) {
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	b, root := parse(t, "1 + x")
	if _, err := New(&recorder{}, std).Evaluate(ctx, b, root); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"→ eval", "node:binary", "node:int", "node:ident", "← eval ((add 1 x)) {nodes=3}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace lacks %q:\n%s", want, out)
		}
	}
}
