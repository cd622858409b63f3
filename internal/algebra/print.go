package algebra

import (
	"math"
	"math/big"
	"strings"
)

// Printing precedences. Output re-parses to an equal expression, so a
// negated leading power is parenthesized: the grammar reads "-x^2" as (-x)^2.
const (
	precLowest = iota
	precSum
	precProd
	precPow
	precAtom
)

func (e *Expr) String() string {
	s, _ := e.format()
	return s
}

// wrap formats e and parenthesizes it when it binds looser than ctx.
func (e *Expr) wrap(ctx int) string {
	s, p := e.format()
	if p < ctx {
		return "(" + s + ")"
	}
	return s
}

func (e *Expr) format() (string, int) {
	switch e.kind {
	case KindUndef:
		return "undef", precAtom
	case KindNum:
		s := e.rat.RatString()
		if e.rat.Sign() < 0 || !e.rat.IsInt() {
			return s, precProd
		}
		return s, precAtom
	case KindFloat:
		s := floatText(e.flt)
		if e.flt.Sign() < 0 {
			return s, precProd
		}
		return s, precAtom
	case KindConst, KindSym:
		return e.name, precAtom
	case KindFunc:
		parts := make([]string, len(e.args))
		for i, a := range e.args {
			parts[i] = a.wrap(precLowest)
		}
		return e.fn.String() + "(" + strings.Join(parts, ", ") + ")", precAtom
	case KindSum:
		return formatSum(e.args), precSum
	case KindProd:
		if e.args[0].isNumeric() {
			return formatProd(e.args[0], e.args[1:]), precProd
		}
		return formatProd(oneExpr, e.args), precProd
	case KindPow:
		base, exp := e.args[0], e.args[1]
		switch {
		case exp.isNumeric() && exp.sign() < 0:
			return formatProd(oneExpr, []*Expr{e}), precProd
		case exp.Equal(halfExpr):
			return "sqrt(" + base.wrap(precLowest) + ")", precAtom
		}
		return base.wrap(precPow+1) + "^" + exp.wrap(precPow), precPow
	}
	return "?", precAtom
}

func formatSum(terms []*Expr) string {
	var sb strings.Builder
	for i, t := range terms {
		if i > 0 {
			if n := negTerm(t); n != nil {
				sb.WriteString(" - ")
				sb.WriteString(n.wrap(precProd))
				continue
			}
			sb.WriteString(" + ")
		}
		sb.WriteString(t.wrap(precProd))
	}
	return sb.String()
}

// negTerm returns -t when t carries a negative sign, nil otherwise.
func negTerm(t *Expr) *Expr {
	c, rest := splitCoeff(t)
	if c.sign() >= 0 {
		return nil
	}
	if rest == nil {
		return numNeg(c)
	}
	return withCoeff(numNeg(c), rest)
}

// formatProd writes c * factors as "n1 * n2 / (d1 * d2)", moving rational
// denominators and negative powers below the line.
func formatProd(c *Expr, factors []*Expr) string {
	negative := c.sign() < 0
	if negative {
		c = numNeg(c)
	}

	var nums, dens []string
	switch c.kind {
	case KindNum:
		if p := c.rat.Num(); !(p.IsInt64() && p.Int64() == 1) {
			nums = append(nums, p.String())
		}
		if q := c.rat.Denom(); !(q.IsInt64() && q.Int64() == 1) {
			dens = append(dens, q.String())
		}
	case KindFloat:
		nums = append(nums, floatText(c.flt))
	}

	for _, f := range factors {
		if f.kind == KindPow && f.args[1].isNumeric() && f.args[1].sign() < 0 {
			d := pow(f.args[0], numNeg(f.args[1]))
			dens = append(dens, d.wrap(precPow))
			continue
		}
		ctx := precProd
		if negative && len(nums) == 0 {
			ctx = precAtom
		}
		nums = append(nums, f.wrap(ctx))
	}

	text := "1"
	if len(nums) > 0 {
		text = strings.Join(nums, " * ")
	}
	switch len(dens) {
	case 0:
	case 1:
		text += " / " + dens[0]
	default:
		text += " / (" + strings.Join(dens, " * ") + ")"
	}
	if negative {
		return "-" + text
	}
	return text
}

// floatText prints the decimal digits the precision carries.
func floatText(f *big.Float) string {
	digits := int(float64(f.Prec()) * math.Log10(2))
	if digits < 1 {
		digits = 1
	}
	return f.Text('g', digits)
}
