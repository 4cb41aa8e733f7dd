package ast

import "cppmir/internal/source"

// FunctionRole distinguishes the call-lowering and mangling treatment a
// function needs beyond its signature.
type FunctionRole uint8

const (
	RoleFree FunctionRole = iota
	RoleMethod
	RoleConstructor
	RoleDestructor
	RoleOperator
)

// Param is one function parameter.
type Param struct {
	Name    source.StringID // may be NoStringID for an unnamed parameter
	Type    TypeRefID
	Default ExprID // NoExprID if absent
	Span    source.Span
}

// MemberInit is one entry of a constructor's member-initializer list.
// BasePath names a direct base class (`Base(args)`); Field names a member
// of the constructor's own class (`field(args)`). Exactly one of the two
// is set. §4.G lowers these as assigns/base-ctor-calls in declaration
// order, not the order they appear in the list, so the list itself keeps
// source order and reordering happens at lowering time.
type MemberInit struct {
	BasePath []source.StringID // nil for a field initializer
	Field    source.StringID   // NoStringID for a base initializer
	Args     []ExprID
	Span     source.Span
}

// FunctionDecl is a function-decl/def node: free function, method,
// constructor, destructor, or operator. Body is NoStmtID for a
// declaration without a definition. Inits is only meaningful when
// Role == RoleConstructor.
type FunctionDecl struct {
	Name       source.StringID
	Role       FunctionRole
	Params     []ParamID
	ReturnType TypeRefID // NoTypeRefID for constructors/destructors
	Inits      []MemberInit
	Body       StmtID
	Access     AccessLevel
	IsVirtual  bool
	IsPure     bool // pure virtual (= 0); Body must be NoStmtID
	IsStatic   bool
	IsConst    bool // const member function
	Span       source.Span
}

// NewParam registers a parameter.
func (t *Tree) NewParam(name source.StringID, typ TypeRefID, def ExprID, span source.Span) ParamID {
	return ParamID(t.Params.Allocate(Param{Name: name, Type: typ, Default: def, Span: span}))
}

// Param returns the parameter for id.
func (t *Tree) Param(id ParamID) *Param {
	return t.Params.Get(uint32(id))
}

// NewFunction registers a function-decl/def item.
func (t *Tree) NewFunction(fn FunctionDecl) ItemID {
	payload := t.Functions.Allocate(fn)
	return t.newItem(ItemFunction, fn.Span, PayloadID(payload))
}

// Function returns the payload for id if it is a function item.
func (t *Tree) Function(id ItemID) (*FunctionDecl, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemFunction {
		return nil, false
	}
	return t.Functions.Get(uint32(item.Payload)), true
}
