package decl

import (
	"cppmir/internal/ast"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// Decl is the stable header shared by every decl kind. The kind-specific
// data lives in a dedicated arena and is addressed by Payload, mirroring
// how internal/ast tags an Item with a payload index into a kind-specific
// arena rather than embedding a variant union inline.
type Decl struct {
	Kind       Kind
	Name       source.StringID
	Parent     ScopeID
	Span       source.Span
	Linkage    Linkage
	Visibility Visibility
	Origin     ast.ItemID
	Payload    uint32

	body    any
	bodySet bool

	layout    any
	layoutSet bool
}

// NamespaceData holds the payload for a KindNamespace decl.
type NamespaceData struct {
	Scope   ScopeID
	Members []DeclID
}

// BaseSpec describes one entry of a class's base-specifier list.
type BaseSpec struct {
	Base    DeclID
	Access  Visibility
	Virtual bool
}

// ClassData holds the payload for a KindClass decl.
type ClassData struct {
	Scope         ScopeID
	Bases         []BaseSpec
	Members       []DeclID
	IsPolymorphic bool
	IsAbstract    bool
	IsUnion       bool
}

// Enumerator is one named constant of an enum decl.
type Enumerator struct {
	Name  source.StringID
	Value int64
}

// EnumData holds the payload for a KindEnum decl.
type EnumData struct {
	Underlying  typesys.TypeID
	Enumerators []Enumerator
	IsScoped    bool
}

// TypeAliasData holds the payload for a KindTypeAlias decl.
type TypeAliasData struct {
	Aliased typesys.TypeID
}

// ParamData describes one function parameter.
type ParamData struct {
	Name    source.StringID
	Type    typesys.TypeID
	Default ast.ExprID
}

// FunctionData holds the payload for a KindFunction decl.
type FunctionData struct {
	Role        FunctionRole
	OwningClass DeclID
	Scope       ScopeID
	Params      []ParamData
	ReturnType  typesys.TypeID
	IsVirtual   bool
	IsPure      bool
	IsStatic    bool
	IsConst     bool
	IsVariadic  bool
	IsDeleted   bool
	IsExternC   bool // declared inside an `extern "C"` block; component H emits it unmangled
	Origin      ast.ItemID
}

// VariableData holds the payload for a KindVariable decl.
type VariableData struct {
	Role        VariableRole
	Type        typesys.TypeID
	OwningClass DeclID
	IsConst     bool
}

// TemplateParamData describes one template parameter (type or value).
type TemplateParamData struct {
	Name    source.StringID
	Default typesys.TypeID
	Decl    DeclID // the KindTemplateTypeParameter decl standing for this parameter
}

// TemplateData holds the payload for a KindTemplate decl.
type TemplateData struct {
	Params         []TemplateParamData
	Entity         DeclID
	RequiresClause ast.ExprID
}

// TemplateTypeParameterData holds the payload for a KindTemplateTypeParameter decl.
type TemplateTypeParameterData struct {
	Index int
	Owner DeclID // the enclosing KindTemplate decl
}

// ConceptData holds the payload for a KindConcept decl.
type ConceptData struct {
	Param       TemplateParamData
	Requirement ast.ExprID
}

// UsingDeclarationData holds the payload for a KindUsingDeclaration decl.
type UsingDeclarationData struct {
	Target DeclID
}

// UsingDirectiveData holds the payload for a KindUsingDirective decl.
type UsingDirectiveData struct {
	Target ScopeID
}

// Parent returns d's enclosing scope.
func Parent(d *Decl) ScopeID { return d.Parent }

// KindOf returns d's kind.
func KindOf(d *Decl) Kind { return d.Kind }

// NameOf returns d's unqualified name.
func NameOf(d *Decl) source.StringID { return d.Name }

// AttachBody records b as d's lowered body. Panics if called twice for the
// same decl, since a second call can only mean the caller re-lowered a
// function it had already lowered.
func AttachBody(d *Decl, b any) {
	if d.bodySet {
		panic("decl: body already attached")
	}
	d.body = b
	d.bodySet = true
}

// Body returns d's attached body, or nil if none has been attached.
func Body(d *Decl) any { return d.body }

// HasBody reports whether AttachBody has been called for d.
func HasBody(d *Decl) bool { return d.bodySet }

// AttachLayout records l as d's computed class layout. Panics if called
// twice for the same decl.
func AttachLayout(d *Decl, l any) {
	if d.layoutSet {
		panic("decl: layout already attached")
	}
	d.layout = l
	d.layoutSet = true
}

// Layout returns d's attached layout, or nil if none has been attached.
func Layout(d *Decl) any { return d.layout }

// HasLayout reports whether AttachLayout has been called for d.
func HasLayout(d *Decl) bool { return d.layoutSet }
