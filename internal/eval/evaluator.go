package eval

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"athena/internal/ast"
	"athena/internal/builtins"
	"athena/internal/diag"
	"athena/internal/engine"
	"athena/internal/source"
	"athena/internal/token"
	"athena/internal/trace"
)

var (
	// ErrHasErrors is returned for trees that contain error nodes.
	ErrHasErrors = errors.New("eval: expression contains syntax errors")
	// ErrNoRoot is returned when the root does not name a node.
	ErrNoRoot = errors.New("eval: no expression")
)

// Reserved identifiers.
const (
	NameUndef = "undef"
	NamePi    = "pi"
)

// Evaluator is immutable after New and may be shared by goroutines as long
// as its engine may.
type Evaluator struct {
	eng      engine.Engine
	reg      *builtins.Registry
	simplify bool
	approx   uint
	reporter diag.Reporter
}

// New returns an evaluator over eng that resolves calls in reg.
// It panics if reg is nil.
func New(eng engine.Engine, reg *builtins.Registry, opts ...Option) *Evaluator {
	if reg == nil {
		panic("eval: nil registry")
	}
	ev := &Evaluator{eng: eng, reg: reg}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

func (ev *Evaluator) Engine() engine.Engine        { return ev.eng }
func (ev *Evaluator) Registry() *builtins.Registry { return ev.reg }

// Evaluate folds the tree under root. The only errors are ErrNoRoot,
// ErrHasErrors and ctx.Err() when the context ends between nodes; every other
// failure shows up as the engine's undefined value.
func (ev *Evaluator) Evaluate(ctx context.Context, b *ast.Builder, root ast.ExprID) (engine.Value, error) {
	if b == nil || b.Exprs.Get(root) == nil {
		return nil, ErrNoRoot
	}
	if b.Exprs.Get(root).HasError {
		return nil, ErrHasErrors
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "eval")
	tr := trace.FromContext(ctx)
	f := folder{
		Evaluator: ev,
		ctx:       ctx,
		b:         b,
		tracer:    tr,
		nodes:     tr.Enabled() && tr.Level().ShouldEmit(trace.ScopeNode),
		parent:    span.ID(),
	}

	v, err := f.fold(root)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	if ev.simplify {
		v = ev.eng.Simplify(v)
	}
	if ev.approx > 0 {
		if a, ok := ev.eng.(engine.Approximator); ok {
			v = a.Approx(v, ev.approx)
		}
	}
	if tr.Enabled() {
		span.WithExtra("nodes", strconv.Itoa(f.count)).End(v.String())
	}
	return v, nil
}

// folder carries the state of one Evaluate call.
type folder struct {
	*Evaluator
	ctx    context.Context
	b      *ast.Builder
	tracer trace.Tracer
	nodes  bool
	parent uint64
	count  int
}

func (f *folder) fold(id ast.ExprID) (engine.Value, error) {
	if err := f.ctx.Err(); err != nil {
		return nil, err
	}
	f.count++
	x := f.b.Exprs.Get(id)
	if !f.nodes {
		return f.foldNode(id, x)
	}

	sp := trace.Begin(f.tracer, trace.ScopeNode, "node:"+x.Kind.String(), f.parent)
	saved := f.parent
	f.parent = sp.ID()
	v, err := f.foldNode(id, x)
	f.parent = saved
	if err != nil {
		sp.End(err.Error())
	} else {
		sp.End(v.String())
	}
	return v, err
}

func (f *folder) foldNode(id ast.ExprID, x *ast.Expr) (engine.Value, error) {
	e := f.b.Exprs
	switch x.Kind {
	case ast.ExprIdent:
		d, _ := e.Ident(id)
		switch name := f.b.Name(d.Name); name {
		case NameUndef:
			return f.eng.Undef(), nil
		case NamePi:
			return f.eng.Pi(), nil
		default:
			return f.eng.Symbol(name), nil
		}

	case ast.ExprInt:
		d, _ := e.Int(id)
		return f.eng.Rational(d.Value), nil

	case ast.ExprBinary:
		d, _ := e.Binary(id)
		l, err := f.fold(d.Left)
		if err != nil {
			return nil, err
		}
		r, err := f.fold(d.Right)
		if err != nil {
			return nil, err
		}
		return f.binary(d.Op, l, r), nil

	case ast.ExprUnary:
		d, _ := e.Unary(id)
		v, err := f.fold(d.Operand)
		if err != nil {
			return nil, err
		}
		if d.Op == token.Minus {
			return f.eng.Neg(v), nil
		}
		return v, nil

	case ast.ExprParen:
		d, _ := e.Paren(id)
		return f.fold(d.Inner)

	case ast.ExprCall:
		return f.call(id, x)

	default:
		// error nodes never reach here: Evaluate refuses trees that hold one
		return f.eng.Undef(), nil
	}
}

func (f *folder) binary(op token.Kind, l, r engine.Value) engine.Value {
	switch op {
	case token.Plus:
		return f.eng.Add(l, r)
	case token.Minus:
		return f.eng.Sub(l, r)
	case token.Star:
		return f.eng.Mul(l, r)
	case token.Slash:
		return f.eng.Div(l, r)
	case token.Caret:
		return f.eng.Pow(l, r)
	}
	if op.IsComparison() {
		if c, ok := f.eng.(engine.Comparer); ok {
			return c.Compare(op, l, r)
		}
		return f.eng.Undef()
	}
	panic(fmt.Sprintf("eval: unsupported binary operator %q", op.String()))
}

func (f *folder) call(id ast.ExprID, x *ast.Expr) (engine.Value, error) {
	d, _ := f.b.Exprs.Call(id)
	name := f.b.Name(d.Name)
	desc, ok := f.reg.Lookup(name)
	if !ok {
		f.warn(diag.EvalUnknownFunc, d.NameSpan, "unknown function '"+name+"'")
		return f.eng.Undef(), nil
	}
	if len(d.Args) != desc.Arity() {
		f.warn(diag.EvalArity, x.Span, fmt.Sprintf("%s takes %d argument(s), got %d", desc, desc.Arity(), len(d.Args)))
	}

	args := make([]engine.Value, len(d.Args))
	for i, arg := range d.Args {
		v, err := f.fold(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return builtins.Call(f.eng, desc, args), nil
}

func (f *folder) warn(code diag.Code, sp source.Span, msg string) {
	if f.reporter != nil {
		diag.ReportWarning(f.reporter, code, sp, msg).Emit()
	}
}
