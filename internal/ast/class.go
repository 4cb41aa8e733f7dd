package ast

import "cppmir/internal/source"

// AccessLevel is a C++ access specifier.
type AccessLevel uint8

const (
	AccessPublic AccessLevel = iota
	AccessProtected
	AccessPrivate
)

// BaseSpecifier names one entry in a class-def's base-clause.
type BaseSpecifier struct {
	Base    TypeRefID
	Access  AccessLevel
	Virtual bool
	Span    source.Span
}

// ClassDef is a struct/class/union definition. IsPolymorphic is implied
// by (and derived from) the presence of a virtual member or a virtual
// base, but the producer supplies it directly so the core never has to
// re-derive it before the class's own members are visited.
type ClassDef struct {
	Name          source.StringID
	Bases         []BaseSpecID
	Members       []ItemID
	IsPolymorphic bool
	IsUnion       bool
	IsAbstract    bool // has at least one pure virtual member
	Span          source.Span
}

// NewClass registers a class-def item. Bases must already be registered
// via NewBaseSpecifier.
func (t *Tree) NewClass(name source.StringID, bases []BaseSpecID, members []ItemID, polymorphic, isUnion bool, span source.Span) ItemID {
	payload := t.Classes.Allocate(ClassDef{
		Name:          name,
		Bases:         bases,
		Members:       members,
		IsPolymorphic: polymorphic,
		IsUnion:       isUnion,
		Span:          span,
	})
	return t.newItem(ItemClass, span, PayloadID(payload))
}

// Class returns the payload for id if it is a class-def item.
func (t *Tree) Class(id ItemID) (*ClassDef, bool) {
	item := t.Item(id)
	if item == nil || item.Kind != ItemClass {
		return nil, false
	}
	return t.Classes.Get(uint32(item.Payload)), true
}

// NewBaseSpecifier registers one base-clause entry.
func (t *Tree) NewBaseSpecifier(base TypeRefID, access AccessLevel, virtual bool, span source.Span) BaseSpecID {
	return BaseSpecID(t.BaseSpecs.Allocate(BaseSpecifier{
		Base:    base,
		Access:  access,
		Virtual: virtual,
		Span:    span,
	}))
}

// BaseSpecifier returns the base-clause entry for id.
func (t *Tree) BaseSpecifier(id BaseSpecID) *BaseSpecifier {
	return t.BaseSpecs.Get(uint32(id))
}
