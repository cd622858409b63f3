package builtins

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"athena/internal/engine"
)

type val string

func (v val) String() string { return string(v) }

// recorder is an engine that only records Apply calls.
type recorder struct {
	applied []string
}

func (r *recorder) Rational(v uint64) engine.Value       { return val("n") }
func (r *recorder) Symbol(name string) engine.Value      { return val(name) }
func (r *recorder) Pi() engine.Value                     { return val("pi") }
func (r *recorder) Undef() engine.Value                  { return val("undef") }
func (r *recorder) Add(a, b engine.Value) engine.Value   { return val("+") }
func (r *recorder) Sub(a, b engine.Value) engine.Value   { return val("-") }
func (r *recorder) Mul(a, b engine.Value) engine.Value   { return val("*") }
func (r *recorder) Div(a, b engine.Value) engine.Value   { return val("/") }
func (r *recorder) Pow(a, b engine.Value) engine.Value   { return val("^") }
func (r *recorder) Neg(a engine.Value) engine.Value      { return val("neg") }
func (r *recorder) Simplify(v engine.Value) engine.Value { return v }

func (r *recorder) Apply(fn engine.Func, args []engine.Value) engine.Value {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	call := fn.String() + "(" + strings.Join(parts, ",") + ")"
	r.applied = append(r.applied, call)
	return val(call)
}

var _ engine.Engine = (*recorder)(nil)

func TestStandardTable(t *testing.T) {
	reg := Default()
	if reg.Len() != len(Standard()) {
		t.Fatalf("len=%d", reg.Len())
	}
	names := reg.Names()
	if !slices.IsSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	tests := []struct {
		name string
		sig  string
	}{
		{"sin", "sin(x)"},
		{"deriv", "deriv(f, x)"},
		{"numer", "numer(frac)"},
		{"expon", "expon(power)"},
		{"common_factor", "common_factor(a, b)"},
		{"free_of", "free_of(expr, x)"},
		{"expand_main", "expand_main(x)"},
	}
	for _, tt := range tests {
		d, ok := reg.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s missing", tt.name)
		}
		if d.String() != tt.sig {
			t.Fatalf("%s renders as %q, want %q", tt.name, d.String(), tt.sig)
		}
		if d.Fn.String() != tt.name {
			t.Fatalf("%s bound to %s", tt.name, d.Fn)
		}
	}
	if _, ok := reg.Lookup("nope"); ok {
		t.Fatal("unknown name found")
	}
}

func TestFingerprint(t *testing.T) {
	a, b := Default(), Default()
	if a == b {
		t.Fatal("Default must build a new registry per call")
	}
	if a.Fingerprint() == "" || a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("standard fingerprints differ: %q vs %q", a.Fingerprint(), b.Fingerprint())
	}

	// sin is the first standard entry; each case replaces it
	withSin := func(d Descriptor) []Descriptor {
		return append(Standard()[1:], d)
	}
	tests := []struct {
		name  string
		descs []Descriptor
	}{
		{"subset", []Descriptor{{Name: "sin", Params: []string{"x"}, Fn: engine.FuncSin}}},
		{"rebound", withSin(Descriptor{Name: "sin", Params: []string{"x"}, Fn: engine.FuncCos})},
		{"renamed param", withSin(Descriptor{Name: "sin", Params: []string{"theta"}, Fn: engine.FuncSin})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := New(tt.descs...)
			if err != nil {
				t.Fatal(err)
			}
			if reg.Fingerprint() == a.Fingerprint() {
				t.Fatalf("fingerprint matches the standard table")
			}
		})
	}
	var nilReg *Registry
	if nilReg.Fingerprint() != "" {
		t.Fatal("nil registry has a fingerprint")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(
		Descriptor{Name: "f", Params: []string{"x"}, Fn: engine.FuncSin},
		Descriptor{Name: "f", Params: []string{"y"}, Fn: engine.FuncCos},
	)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v", err)
	}
	if _, err := New(Descriptor{Name: "g"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
}

func TestRegistryCopiesParams(t *testing.T) {
	params := []string{"x"}
	reg, err := New(Descriptor{Name: "f", Params: params, Fn: engine.FuncSin})
	if err != nil {
		t.Fatal(err)
	}
	params[0] = "changed"
	if d, _ := reg.Lookup("f"); d.Params[0] != "x" {
		t.Fatal("registry shares caller's slice")
	}
}

func TestCallChecksArity(t *testing.T) {
	eng := &recorder{}
	sin, _ := Default().Lookup("sin")
	deriv, _ := Default().Lookup("deriv")

	tests := []struct {
		d    Descriptor
		args []engine.Value
		want string
	}{
		{sin, []engine.Value{val("x")}, "sin(x)"},
		{sin, nil, "undef"},
		{sin, []engine.Value{val("x"), val("y")}, "undef"},
		{deriv, []engine.Value{val("f"), val("x")}, "deriv(f,x)"},
		{deriv, []engine.Value{val("f")}, "undef"},
	}
	for _, tt := range tests {
		if got := Call(eng, tt.d, tt.args).String(); got != tt.want {
			t.Fatalf("Call(%s, %d args) = %s, want %s", tt.d.Name, len(tt.args), got, tt.want)
		}
	}
	if len(eng.applied) != 2 {
		t.Fatalf("engine reached %d times: %v", len(eng.applied), eng.applied)
	}
}
