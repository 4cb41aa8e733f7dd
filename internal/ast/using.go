package ast

import "cppmir/internal/source"

// UsingDeclaration is `using Path::Name;`, bringing a single name from a
// qualifying scope into the current one.
type UsingDeclaration struct {
	Path []source.StringID // qualifying scope, outermost first
	Name source.StringID
	Span source.Span
}

// UsingDirective is `using namespace Path;`, making an entire namespace's
// members visible for unqualified lookup in the current scope.
type UsingDirective struct {
	Path []source.StringID
	Span source.Span
}

// NewUsingDeclaration registers a using-declaration item.
func (t *Tree) NewUsingDeclaration(path []source.StringID, name source.StringID, span source.Span) ItemID {
	payload := t.UsingDeclarations.Allocate(UsingDeclaration{Path: path, Name: name, Span: span})
	return t.newItem(ItemUsingDeclaration, span, PayloadID(payload))
}

// UsingDeclarationOf returns the payload for id if it is a using-declaration item.
func (t *Tree) UsingDeclarationOf(id ItemID) (*UsingDeclaration, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemUsingDeclaration {
		return nil, false
	}
	return t.UsingDeclarations.Get(uint32(item.Payload)), true
}

// NewUsingDirective registers a using-directive item.
func (t *Tree) NewUsingDirective(path []source.StringID, span source.Span) ItemID {
	payload := t.UsingDirectives.Allocate(UsingDirective{Path: path, Span: span})
	return t.newItem(ItemUsingDirective, span, PayloadID(payload))
}

// UsingDirectiveOf returns the payload for id if it is a using-directive item.
func (t *Tree) UsingDirectiveOf(id ItemID) (*UsingDirective, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemUsingDirective {
		return nil, false
	}
	return t.UsingDirectives.Get(uint32(item.Payload)), true
}
