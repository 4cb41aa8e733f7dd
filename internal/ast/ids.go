package ast

// ID types for every node category. Zero is reserved as "absent" for
// every one of them, so a struct field left unset reads as "no node"
// without a separate boolean.
type (
	ItemID     uint32 // top-level and member declarations
	StmtID     uint32
	ExprID     uint32
	TypeRefID  uint32 // a type as written in source, before canonicalisation
	ParamID    uint32
	BaseSpecID uint32
	CaseID     uint32
	PayloadID  uint32
)

const (
	NoItemID     ItemID     = 0
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
	NoTypeRefID  TypeRefID  = 0
	NoParamID    ParamID    = 0
	NoBaseSpecID BaseSpecID = 0
	NoCaseID     CaseID     = 0
	NoPayloadID  PayloadID  = 0
)

func (id ItemID) IsValid() bool     { return id != NoItemID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id TypeRefID) IsValid() bool  { return id != NoTypeRefID }
func (id ParamID) IsValid() bool    { return id != NoParamID }
func (id BaseSpecID) IsValid() bool { return id != NoBaseSpecID }
func (id CaseID) IsValid() bool     { return id != NoCaseID }
