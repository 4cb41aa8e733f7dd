package ast

import "cppmir/internal/source"

// TemplateParam is one entry in a template-decl's parameter list. Only
// type template parameters are modelled; non-type and template-template
// parameters are outside the supported subset.
type TemplateParam struct {
	Name    source.StringID
	Default TypeRefID // NoTypeRefID if absent
	Span    source.Span
}

// TemplateDecl wraps a templated class or function. Entity points at the
// ItemClass or ItemFunction item being templated; RequiresClause is the
// optional trailing constraint expression (NoExprID if absent).
type TemplateDecl struct {
	Params         []TemplateParam
	Entity         ItemID
	RequiresClause ExprID
	Span           source.Span
}

// NewTemplate registers a template-decl item.
func (t *Tree) NewTemplate(params []TemplateParam, entity ItemID, requires ExprID, span source.Span) ItemID {
	payload := t.Templates.Allocate(TemplateDecl{
		Params:         params,
		Entity:         entity,
		RequiresClause: requires,
		Span:           span,
	})
	return t.newItem(ItemTemplate, span, PayloadID(payload))
}

// Template returns the payload for id if it is a template item.
func (t *Tree) Template(id ItemID) (*TemplateDecl, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemTemplate {
		return nil, false
	}
	return t.Templates.Get(uint32(item.Payload)), true
}
