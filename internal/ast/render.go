package ast

import (
	"strconv"
	"strings"

	"athena/internal/token"
)

// Render prints id back as source text. Groups are kept exactly where the
// tree has ExprParen nodes, so re-parsing the output of a successfully parsed
// tree yields the same structure. Error placeholders render as "<error>".
func Render(b *Builder, id ExprID) string {
	var sb strings.Builder
	render(&sb, b, id)
	return sb.String()
}

func render(sb *strings.Builder, b *Builder, id ExprID) {
	e := b.Exprs
	expr := e.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ExprIdent:
		d, _ := e.Ident(id)
		sb.WriteString(b.Name(d.Name))
	case ExprInt:
		d, _ := e.Int(id)
		sb.WriteString(strconv.FormatUint(d.Value, 10))
	case ExprBinary:
		d, _ := e.Binary(id)
		render(sb, b, d.Left)
		sb.WriteByte(' ')
		sb.WriteString(d.Op.String())
		sb.WriteByte(' ')
		render(sb, b, d.Right)
	case ExprUnary:
		d, _ := e.Unary(id)
		sb.WriteString(d.Op.String())
		render(sb, b, d.Operand)
	case ExprParen:
		d, _ := e.Paren(id)
		sb.WriteByte('(')
		render(sb, b, d.Inner)
		sb.WriteByte(')')
	case ExprCall:
		d, _ := e.Call(id)
		sb.WriteString(b.Name(d.Name))
		sb.WriteByte('(')
		for i, arg := range d.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			render(sb, b, arg)
		}
		sb.WriteByte(')')
	case ExprError:
		sb.WriteString("<error>")
	}
}

// Dump prints a span-free structural form used by tests and `athena parse`:
//
//	1 + 2 * 3   =>  (+ 1 (* 2 3))
//	-x          =>  (neg x)
//	(x)         =>  (paren x)
//	sin(x, 1)   =>  (call sin x 1)
//	1 + *       =>  (+ 1 (error bad-expr '*'))
func Dump(b *Builder, id ExprID) string {
	var sb strings.Builder
	dump(&sb, b, id)
	return sb.String()
}

func dump(sb *strings.Builder, b *Builder, id ExprID) {
	e := b.Exprs
	expr := e.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	switch expr.Kind {
	case ExprIdent, ExprInt:
		render(sb, b, id)
	case ExprBinary:
		d, _ := e.Binary(id)
		sb.WriteByte('(')
		sb.WriteString(d.Op.String())
		sb.WriteByte(' ')
		dump(sb, b, d.Left)
		sb.WriteByte(' ')
		dump(sb, b, d.Right)
		sb.WriteByte(')')
	case ExprUnary:
		d, _ := e.Unary(id)
		if d.Op == token.Minus {
			sb.WriteString("(neg ")
		} else {
			sb.WriteString("(pos ")
		}
		dump(sb, b, d.Operand)
		sb.WriteByte(')')
	case ExprParen:
		d, _ := e.Paren(id)
		sb.WriteString("(paren ")
		dump(sb, b, d.Inner)
		sb.WriteByte(')')
	case ExprCall:
		d, _ := e.Call(id)
		sb.WriteString("(call ")
		sb.WriteString(b.Name(d.Name))
		for _, arg := range d.Args {
			sb.WriteByte(' ')
			dump(sb, b, arg)
		}
		sb.WriteByte(')')
	case ExprError:
		d, _ := e.Error(id)
		sb.WriteString("(error ")
		sb.WriteString(d.Reason.String())
		if d.Reason == ErrBadExpr || d.Reason == ErrTrailing {
			sb.WriteString(" '")
			sb.WriteString(d.Tok.String())
			sb.WriteByte('\'')
		}
		if d.Partial.IsValid() {
			sb.WriteByte(' ')
			dump(sb, b, d.Partial)
		}
		sb.WriteByte(')')
	}
}
