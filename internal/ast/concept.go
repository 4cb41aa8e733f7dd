package ast

import "cppmir/internal/source"

// ConceptDecl is a simple concept: a named, single-type-parameter
// predicate over a requirement expression.
type ConceptDecl struct {
	Name        source.StringID
	Param       TemplateParam
	Requirement ExprID
	Span        source.Span
}

// NewConcept registers a concept-decl item.
func (t *Tree) NewConcept(name source.StringID, param TemplateParam, requirement ExprID, span source.Span) ItemID {
	payload := t.Concepts.Allocate(ConceptDecl{Name: name, Param: param, Requirement: requirement, Span: span})
	return t.newItem(ItemConcept, span, PayloadID(payload))
}

// Concept returns the payload for id if it is a concept item.
func (t *Tree) Concept(id ItemID) (*ConceptDecl, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemConcept {
		return nil, false
	}
	return t.Concepts.Get(uint32(item.Payload)), true
}
