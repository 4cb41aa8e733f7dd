package ast

import "cppmir/internal/source"

// VariableRole distinguishes storage/scope for the resolver and MIR
// builder; the AST does not otherwise separate globals, fields, and
// locals into different node categories.
type VariableRole uint8

const (
	RoleGlobal VariableRole = iota
	RoleField
	RoleLocal
)

// VariableDecl is a variable declaration: global, field, or local (locals
// also appear wrapped in a StmtDecl).
type VariableDecl struct {
	Name    source.StringID
	Type    TypeRefID
	Init    ExprID // NoExprID if absent
	Role    VariableRole
	Access  AccessLevel // meaningful only for RoleField
	IsConst bool
	Span    source.Span
}

// NewVariable registers a variable-decl item.
func (t *Tree) NewVariable(v VariableDecl) ItemID {
	payload := t.Variables.Allocate(v)
	return t.newItem(ItemVariable, v.Span, PayloadID(payload))
}

// Variable returns the payload for id if it is a variable item.
func (t *Tree) Variable(id ItemID) (*VariableDecl, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemVariable {
		return nil, false
	}
	return t.Variables.Get(uint32(item.Payload)), true
}
