package ast

type (
	ExprID  uint32
	BlockID uint32
)

const (
	NoExprID  ExprID  = 0
	NoBlockID BlockID = 0
)

func (id ExprID) IsValid() bool  { return id != NoExprID }
func (id BlockID) IsValid() bool { return id != NoBlockID }
