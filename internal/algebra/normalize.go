package algebra

import (
	"slices"
	"strings"
)

// rank orders operands: numbers first, then constants, symbols and
// composite nodes.
func rank(e *Expr) int {
	switch e.kind {
	case KindNum, KindFloat:
		return 0
	case KindConst:
		return 1
	case KindSym:
		return 2
	case KindPow:
		return 3
	case KindFunc:
		return 4
	default:
		return 5
	}
}

func compareOperands(a, b *Expr) int {
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(a.key, b.key)
}

func sortOperands(args []*Expr) { slices.SortFunc(args, compareOperands) }

// splitCoeff separates the numeric coefficient of a term.
func splitCoeff(e *Expr) (coeff, rest *Expr) {
	switch {
	case e.isNumeric():
		return e, nil
	case e.kind == KindProd && e.args[0].isNumeric():
		return e.args[0], prodOf(e.args[1:])
	default:
		return oneExpr, e
	}
}

// prodOf wraps already normalized, sorted factors without a coefficient.
func prodOf(factors []*Expr) *Expr {
	if len(factors) == 1 {
		return factors[0]
	}
	return nodeExpr(KindProd, "*", slices.Clone(factors))
}

// withCoeff multiplies a coefficient-free term by c.
func withCoeff(c, rest *Expr) *Expr {
	switch {
	case c.isOne():
		return rest
	case rest.kind == KindProd:
		return nodeExpr(KindProd, "*", append([]*Expr{c}, rest.args...))
	default:
		return nodeExpr(KindProd, "*", []*Expr{c, rest})
	}
}

// sum builds a normalized n-ary sum: nested sums are flattened, numbers
// folded and like terms collected by coefficient.
func sum(terms []*Expr) *Expr {
	constant := zeroExpr
	coeffs := make(map[string]*Expr)
	rests := make(map[string]*Expr)
	var order []string

	var collect func(t *Expr) bool
	collect = func(t *Expr) bool {
		switch t.kind {
		case KindUndef:
			return false
		case KindSum:
			for _, a := range t.args {
				if !collect(a) {
					return false
				}
			}
			return true
		}
		c, rest := splitCoeff(t)
		if rest == nil {
			constant = numAdd(constant, c)
			return true
		}
		if prev, ok := coeffs[rest.key]; ok {
			coeffs[rest.key] = numAdd(prev, c)
		} else {
			coeffs[rest.key] = c
			rests[rest.key] = rest
			order = append(order, rest.key)
		}
		return true
	}
	for _, t := range terms {
		if !collect(t) {
			return undefExpr
		}
	}

	out := make([]*Expr, 0, len(order)+1)
	for _, k := range order {
		c := coeffs[k]
		if c.isZero() {
			continue
		}
		out = append(out, withCoeff(c, rests[k]))
	}
	slices.SortFunc(out, func(a, b *Expr) int {
		_, ra := splitCoeff(a)
		_, rb := splitCoeff(b)
		return compareOperands(ra, rb)
	})
	if !constant.isZero() || (constant.kind == KindFloat && len(out) == 0) {
		out = append(out, constant)
	}
	switch len(out) {
	case 0:
		return zeroExpr
	case 1:
		return out[0]
	}
	return nodeExpr(KindSum, "+", out)
}

// splitPow separates a factor into base and exponent.
func splitPow(e *Expr) (base, exp *Expr) {
	if e.kind == KindPow {
		return e.args[0], e.args[1]
	}
	return e, oneExpr
}

// prod builds a normalized n-ary product: nested products are flattened,
// numbers folded and powers of the same base merged by adding exponents.
func prod(factors []*Expr) *Expr {
	coeff := oneExpr
	exps := make(map[string]*Expr)
	bases := make(map[string]*Expr)
	var order []string

	var collect func(f *Expr) bool
	collect = func(f *Expr) bool {
		switch {
		case f.kind == KindUndef:
			return false
		case f.kind == KindProd:
			for _, a := range f.args {
				if !collect(a) {
					return false
				}
			}
			return true
		case f.isNumeric():
			coeff = numMul(coeff, f)
			return true
		}
		base, exp := splitPow(f)
		if prev, ok := exps[base.key]; ok {
			exps[base.key] = add(prev, exp)
		} else {
			exps[base.key] = exp
			bases[base.key] = base
			order = append(order, base.key)
		}
		return true
	}
	for _, f := range factors {
		if !collect(f) {
			return undefExpr
		}
	}

	var out []*Expr
	regroup := false
	for _, k := range order {
		f := pow(bases[k], exps[k])
		switch {
		case f.kind == KindUndef:
			return undefExpr
		case f.isNumeric():
			coeff = numMul(coeff, f)
		case f.kind == KindProd:
			// a power of a product distributed over its factors
			out = append(out, f)
			regroup = true
		default:
			out = append(out, f)
		}
	}
	if regroup {
		return prod(append(out, coeff))
	}
	if coeff.isZero() {
		return coeff
	}
	sortOperands(out)
	switch {
	case len(out) == 0:
		return coeff
	case len(out) == 1 && coeff.isOne():
		return out[0]
	case coeff.isOne():
		return nodeExpr(KindProd, "*", out)
	}
	return nodeExpr(KindProd, "*", append([]*Expr{coeff}, out...))
}
