package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"athena/internal/ast"
	"athena/internal/source"
)

// CheckTreeInvariants walks the tree under root and verifies:
// 1) every span lies within the file content and points at sf
// 2) every child span is contained in its parent span
// 3) HasError equals the OR of the children's flags (true for error nodes)
func CheckTreeInvariants(b *ast.Builder, root ast.ExprID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if b.Exprs.Get(root) == nil {
		return fmt.Errorf("root %d not found", root)
	}

	var failure error
	b.Exprs.Walk(root, func(id ast.ExprID, x *ast.Expr) bool {
		if failure != nil {
			return false
		}
		if x.Span.File != sf.ID {
			failure = fmt.Errorf("node %d (%s): span file mismatch: got=%d want=%d", id, x.Kind, x.Span.File, sf.ID)
			return false
		}
		if x.Span.End < x.Span.Start || x.Span.End > lenContent {
			failure = fmt.Errorf("node %d (%s): span %v out of bounds (len %d)", id, x.Kind, x.Span, lenContent)
			return false
		}
		childErr := false
		for _, c := range b.Exprs.Children(id) {
			cx := b.Exprs.Get(c)
			if cx == nil {
				failure = fmt.Errorf("node %d (%s): dangling child %d", id, x.Kind, c)
				return false
			}
			if !x.Span.Contains(cx.Span) {
				failure = fmt.Errorf("node %d (%s): child span %v outside %v", id, x.Kind, cx.Span, x.Span)
				return false
			}
			childErr = childErr || cx.HasError
		}
		want := childErr || x.Kind == ast.ExprError
		if x.HasError != want {
			failure = fmt.Errorf("node %d (%s): HasError=%v, want %v", id, x.Kind, x.HasError, want)
			return false
		}
		return true
	})
	return failure
}
