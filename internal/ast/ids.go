package ast

type (
	// ExprID addresses a node in Exprs.Arena; zero means "no expression".
	ExprID uint32
	// PayloadID addresses per-kind data in the payload arenas.
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
