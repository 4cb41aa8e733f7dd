package ast

import "cppmir/internal/source"

// NamespaceDef groups a run of member items under a name (empty for an
// anonymous namespace).
type NamespaceDef struct {
	Name    source.StringID
	Members []ItemID
	Span    source.Span
}

// NewNamespace registers a namespace-def item.
func (t *Tree) NewNamespace(name source.StringID, members []ItemID, span source.Span) ItemID {
	payload := t.Namespaces.Allocate(NamespaceDef{Name: name, Members: members, Span: span})
	return t.newItem(ItemNamespace, span, PayloadID(payload))
}

// Namespace returns the payload for id if it is a namespace-def item.
func (t *Tree) Namespace(id ItemID) (*NamespaceDef, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemNamespace {
		return nil, false
	}
	return t.Namespaces.Get(uint32(item.Payload)), true
}
