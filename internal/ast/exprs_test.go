package ast

import (
	"testing"

	"athena/internal/source"
	"athena/internal/token"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

func TestHasErrorPropagates(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	e := b.Exprs
	one := e.NewInt(sp(1, 2), 1)
	bad := e.NewError(sp(4, 5), ErrBadExpr, token.Star, NoExprID)
	sum := e.NewBinary(token.Plus, sp(3, 4), one, bad)
	group := e.NewParen(sp(0, 1), sp(7, 8), sum)
	neg := e.NewUnary(token.Minus, sp(9, 10), e.NewIdent(sp(10, 11), b.StringsInterner.Intern("x")))
	call := e.NewCall(b.StringsInterner.Intern("f"), sp(12, 13), sp(20, 21), []ExprID{neg, group})

	for _, tt := range []struct {
		id   ExprID
		want bool
	}{{one, false}, {bad, true}, {sum, true}, {group, true}, {neg, false}, {call, true}} {
		if got := e.Get(tt.id).HasError; got != tt.want {
			t.Fatalf("%s: HasError = %v, want %v", e.Get(tt.id).Kind, got, tt.want)
		}
	}
}

func TestSpansAreMergedBottomUp(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	e := b.Exprs
	x := e.NewIdent(sp(1, 2), b.StringsInterner.Intern("x"))
	two := e.NewInt(sp(5, 6), 2)
	sum := e.NewBinary(token.Plus, sp(3, 4), x, two)
	group := e.NewParen(sp(0, 1), sp(6, 7), sum)
	pow := e.NewBinary(token.Caret, sp(7, 8), group, e.NewInt(sp(8, 9), 2))

	if got := e.Get(sum).Span; got != sp(1, 6) {
		t.Fatalf("sum span = %v", got)
	}
	if got := e.Get(group).Span; got != sp(0, 7) {
		t.Fatalf("paren span = %v", got)
	}
	if got := e.Get(pow).Span; got != sp(0, 9) {
		t.Fatalf("pow span = %v", got)
	}
}

func TestConstructorsRejectWrongOperators(t *testing.T) {
	e := NewExprs(0)
	for _, fn := range []func(){
		func() { e.NewBinary(token.Assign, source.Span{}, NoExprID, NoExprID) },
		func() { e.NewUnary(token.Star, source.Span{}, NoExprID) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn()
		}()
	}
}

func TestAccessorsCheckKind(t *testing.T) {
	e := NewExprs(0)
	n := e.NewInt(sp(0, 1), 7)
	if _, ok := e.Ident(n); ok {
		t.Fatal("Ident accessor accepted an int")
	}
	if d, ok := e.Int(n); !ok || d.Value != 7 {
		t.Fatal("Int accessor failed")
	}
	if e.Get(NoExprID) != nil || e.Get(ExprID(100)) != nil {
		t.Fatal("invalid ids must return nil")
	}
}

func TestRenderAndDump(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	e := b.Exprs
	in := b.StringsInterner
	x := e.NewIdent(sp(0, 1), in.Intern("x"))
	neg := e.NewUnary(token.Minus, sp(0, 1), x)
	call := e.NewCall(in.Intern("deriv"), sp(0, 1), sp(0, 1), []ExprID{neg, e.NewIdent(sp(0, 1), in.Intern("x"))})
	group := e.NewParen(sp(0, 1), sp(0, 1), e.NewBinary(token.Plus, sp(0, 1), call, e.NewInt(sp(0, 1), 3)))
	root := e.NewBinary(token.Caret, sp(0, 1), group, e.NewError(sp(0, 1), ErrBadExpr, token.RParen, NoExprID))

	if got := Render(b, root); got != "(deriv(-x, x) + 3) ^ <error>" {
		t.Fatalf("Render = %q", got)
	}
	if got := Dump(b, root); got != "(^ (paren (+ (call deriv (neg x) x) 3)) (error bad-expr ')'))" {
		t.Fatalf("Dump = %q", got)
	}
}

func TestWalkVisitsPreOrder(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	e := b.Exprs
	l := e.NewInt(sp(0, 1), 1)
	r := e.NewInt(sp(4, 5), 2)
	root := e.NewBinary(token.Plus, sp(2, 3), l, r)
	var seen []ExprID
	e.Walk(root, func(id ExprID, _ *Expr) bool {
		seen = append(seen, id)
		return true
	})
	if len(seen) != 3 || seen[0] != root || seen[1] != l || seen[2] != r {
		t.Fatalf("walk order = %v", seen)
	}
}
