package ast

import (
	"athena/internal/source"
)

type Hints struct{ Exprs uint }

// Builder owns the node arenas of one parse together with the identifier interner.
type Builder struct {
	Exprs           *Exprs
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, stringsInterner *source.Interner) *Builder {
	if stringsInterner == nil {
		stringsInterner = source.NewInterner()
	}
	return &Builder{
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: stringsInterner,
	}
}

// Name returns the text of an interned identifier.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
