package decl

import (
	"cppmir/internal/arena"
	"cppmir/internal/ast"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// Hints provide optional capacity suggestions for the table's arenas.
type Hints struct {
	Decls  int
	Scopes int
}

// Table aggregates every decl and scope arena for one translation unit,
// plus the interner they share with the AST that was resolved into them.
type Table struct {
	Decls  *arena.Arena[Decl]
	Scopes *arena.Arena[Scope]

	Namespaces        *arena.Arena[NamespaceData]
	Classes           *arena.Arena[ClassData]
	Enums             *arena.Arena[EnumData]
	TypeAliases       *arena.Arena[TypeAliasData]
	Functions         *arena.Arena[FunctionData]
	Variables         *arena.Arena[VariableData]
	Templates         *arena.Arena[TemplateData]
	TemplateTypeParam *arena.Arena[TemplateTypeParameterData]
	Concepts          *arena.Arena[ConceptData]
	UsingDeclarations *arena.Arena[UsingDeclarationData]
	UsingDirectives   *arena.Arena[UsingDirectiveData]

	Strings *source.Interner

	GlobalScope     ScopeID
	GlobalNamespace DeclID
}

// NewTable builds a fresh table with the global namespace scope and decl
// pre-populated, the single root every scope and every decl's parent chain
// ultimately reaches. If strings is nil a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Decls:             arena.New[Decl](h.Decls),
		Scopes:            arena.New[Scope](h.Scopes),
		Namespaces:        arena.New[NamespaceData](4),
		Classes:           arena.New[ClassData](h.Decls / 4),
		Enums:             arena.New[EnumData](4),
		TypeAliases:       arena.New[TypeAliasData](4),
		Functions:         arena.New[FunctionData](h.Decls / 2),
		Variables:         arena.New[VariableData](h.Decls / 2),
		Templates:         arena.New[TemplateData](4),
		TemplateTypeParam: arena.New[TemplateTypeParameterData](4),
		Concepts:          arena.New[ConceptData](4),
		UsingDeclarations: arena.New[UsingDeclarationData](4),
		UsingDirectives:   arena.New[UsingDirectiveData](4),
		Strings:           strings,
	}

	globalScope := t.Scopes.Allocate(Scope{
		Kind:      ScopeNamespace,
		Parent:    NoScopeID,
		NameIndex: make(map[source.StringID][]DeclID),
	})
	t.GlobalScope = ScopeID(globalScope)

	payload := t.Namespaces.Allocate(NamespaceData{Scope: t.GlobalScope})
	globalDecl := t.Decls.Allocate(Decl{
		Kind:    KindNamespace,
		Parent:  NoScopeID,
		Payload: payload,
	})
	t.GlobalNamespace = DeclID(globalDecl)
	if s := t.Scopes.Get(globalScope); s != nil {
		s.Owner = t.GlobalNamespace
	}
	return t
}

// Decl returns the decl header for id, or nil if id is invalid.
func (t *Table) Decl(id DeclID) *Decl { return t.Decls.Get(uint32(id)) }

// Scope returns the scope for id, or nil if id is invalid.
func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(uint32(id)) }

// NewScope allocates a child scope of parent and links it into the tree.
// Passing NoScopeID as parent is only valid for the global namespace scope,
// which NewTable already created; callers building further roots should not
// occur in a single-translation-unit table.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner DeclID, span source.Span) ScopeID {
	id := ScopeID(t.Scopes.Allocate(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID][]DeclID),
	}))
	if parent.IsValid() {
		if ps := t.Scope(parent); ps != nil {
			ps.Children = append(ps.Children, id)
		}
	}
	return id
}

func (t *Table) newDecl(kind Kind, name source.StringID, parent ScopeID, span source.Span, linkage Linkage, vis Visibility, origin ast.ItemID, payload uint32) DeclID {
	return DeclID(t.Decls.Allocate(Decl{
		Kind:       kind,
		Name:       name,
		Parent:     parent,
		Span:       span,
		Linkage:    linkage,
		Visibility: vis,
		Origin:     origin,
		Payload:    payload,
	}))
}

// NewNamespace allocates a namespace decl together with the scope it owns.
// Reopened namespaces (the same name appearing twice at the same scope) are
// the resolver's concern: it declares a fresh Decl per occurrence and merges
// members into the same underlying scope.
func (t *Table) NewNamespace(name source.StringID, parent ScopeID, span source.Span) (DeclID, ScopeID) {
	payload := t.Namespaces.Allocate(NamespaceData{})
	id := t.newDecl(KindNamespace, name, parent, span, LinkageExternal, VisPublic, ast.NoItemID, payload)
	scope := t.NewScope(ScopeNamespace, parent, id, span)
	t.Namespaces.Get(payload).Scope = scope
	return id, scope
}

// NewClass allocates a class decl together with the scope its members and
// base classes are looked up in.
func (t *Table) NewClass(name source.StringID, parent ScopeID, span source.Span, origin ast.ItemID, isUnion bool) (DeclID, ScopeID) {
	payload := t.Classes.Allocate(ClassData{IsUnion: isUnion})
	id := t.newDecl(KindClass, name, parent, span, LinkageExternal, VisPublic, origin, payload)
	scope := t.NewScope(ScopeClass, parent, id, span)
	t.Classes.Get(payload).Scope = scope
	return id, scope
}

// NewEnum allocates an enum decl. Unscoped enums are transparent: the
// resolver marks their injected scope Transparent so enumerators are also
// visible in the enclosing scope.
func (t *Table) NewEnum(name source.StringID, parent ScopeID, span source.Span, underlying typesys.TypeID, scoped bool) DeclID {
	payload := t.Enums.Allocate(EnumData{Underlying: underlying, IsScoped: scoped})
	return t.newDecl(KindEnum, name, parent, span, LinkageExternal, VisPublic, ast.NoItemID, payload)
}

// NewTypeAlias allocates a type-alias decl.
func (t *Table) NewTypeAlias(name source.StringID, parent ScopeID, span source.Span, aliased typesys.TypeID) DeclID {
	payload := t.TypeAliases.Allocate(TypeAliasData{Aliased: aliased})
	return t.newDecl(KindTypeAlias, name, parent, span, LinkageInternal, VisPublic, ast.NoItemID, payload)
}

// NewFunction allocates a function decl and, unless it is only a
// declaration, the scope its parameters and body locals are declared in is
// created separately by the resolver when it lowers the body (a prototype
// with no definition never needs one).
func (t *Table) NewFunction(name source.StringID, parent ScopeID, span source.Span, data FunctionData) DeclID {
	payload := t.Functions.Allocate(data)
	linkage := LinkageExternal
	if data.IsStatic && data.Role == RoleFree {
		linkage = LinkageInternal
	}
	return t.newDecl(KindFunction, name, parent, span, linkage, VisPublic, data.Origin, payload)
}

// FunctionScope creates (once) the function-body scope for fn and records
// it on the function's payload.
func (t *Table) FunctionScope(fn DeclID, span source.Span) ScopeID {
	d := t.Decl(fn)
	if d == nil || d.Kind != KindFunction {
		return NoScopeID
	}
	data := t.Functions.Get(d.Payload)
	if data.Scope.IsValid() {
		return data.Scope
	}
	data.Scope = t.NewScope(ScopeFunction, d.Parent, fn, span)
	return data.Scope
}

// NewVariable allocates a variable decl (global, local, parameter, or field).
func (t *Table) NewVariable(name source.StringID, parent ScopeID, span source.Span, data VariableData) DeclID {
	payload := t.Variables.Allocate(data)
	linkage := LinkageExternal
	if data.Role != RoleGlobal {
		linkage = LinkageNone
	}
	return t.newDecl(KindVariable, name, parent, span, linkage, VisPublic, ast.NoItemID, payload)
}

// NewTemplate allocates a template decl wrapping entity (a class or function
// decl already allocated with parameters substitutable within it).
func (t *Table) NewTemplate(name source.StringID, parent ScopeID, span source.Span, params []TemplateParamData, entity DeclID, requires ast.ExprID) DeclID {
	payload := t.Templates.Allocate(TemplateData{Params: params, Entity: entity, RequiresClause: requires})
	return t.newDecl(KindTemplate, name, parent, span, LinkageExternal, VisPublic, ast.NoItemID, payload)
}

// NewTemplateTypeParameter allocates the decl standing for one template type
// parameter, visible only inside the template's own scope.
func (t *Table) NewTemplateTypeParameter(name source.StringID, parent ScopeID, span source.Span, owner DeclID, index int) DeclID {
	payload := t.TemplateTypeParam.Allocate(TemplateTypeParameterData{Index: index, Owner: owner})
	return t.newDecl(KindTemplateTypeParameter, name, parent, span, LinkageNone, VisPublic, ast.NoItemID, payload)
}

// NewConcept allocates a concept decl.
func (t *Table) NewConcept(name source.StringID, parent ScopeID, span source.Span, param TemplateParamData, requirement ast.ExprID) DeclID {
	payload := t.Concepts.Allocate(ConceptData{Param: param, Requirement: requirement})
	return t.newDecl(KindConcept, name, parent, span, LinkageInternal, VisPublic, ast.NoItemID, payload)
}

// NewUsingDeclaration allocates a using-declaration decl that injects target
// as a binding in the declaring scope under name.
func (t *Table) NewUsingDeclaration(name source.StringID, parent ScopeID, span source.Span, target DeclID) DeclID {
	payload := t.UsingDeclarations.Allocate(UsingDeclarationData{Target: target})
	return t.newDecl(KindUsingDeclaration, name, parent, span, LinkageNone, VisPublic, ast.NoItemID, payload)
}

// NewUsingDirective allocates a using-directive decl that adds target to the
// set of namespaces the declaring scope transitively searches.
func (t *Table) NewUsingDirective(parent ScopeID, span source.Span, target ScopeID) DeclID {
	payload := t.UsingDirectives.Allocate(UsingDirectiveData{Target: target})
	return t.newDecl(KindUsingDirective, source.NoStringID, parent, span, LinkageNone, VisPublic, ast.NoItemID, payload)
}

// Namespace returns the payload for a KindNamespace decl.
func (t *Table) Namespace(id DeclID) (*NamespaceData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindNamespace {
		return nil, false
	}
	return t.Namespaces.Get(d.Payload), true
}

// Class returns the payload for a KindClass decl.
func (t *Table) Class(id DeclID) (*ClassData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindClass {
		return nil, false
	}
	return t.Classes.Get(d.Payload), true
}

// Function returns the payload for a KindFunction decl.
func (t *Table) Function(id DeclID) (*FunctionData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindFunction {
		return nil, false
	}
	return t.Functions.Get(d.Payload), true
}

// Variable returns the payload for a KindVariable decl.
func (t *Table) Variable(id DeclID) (*VariableData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindVariable {
		return nil, false
	}
	return t.Variables.Get(d.Payload), true
}

// Template returns the payload for a KindTemplate decl.
func (t *Table) Template(id DeclID) (*TemplateData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindTemplate {
		return nil, false
	}
	return t.Templates.Get(d.Payload), true
}

// Concept returns the payload for a KindConcept decl.
func (t *Table) Concept(id DeclID) (*ConceptData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindConcept {
		return nil, false
	}
	return t.Concepts.Get(d.Payload), true
}

// UsingDeclarationOf returns the payload for a KindUsingDeclaration decl.
func (t *Table) UsingDeclarationOf(id DeclID) (*UsingDeclarationData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindUsingDeclaration {
		return nil, false
	}
	return t.UsingDeclarations.Get(d.Payload), true
}

// UsingDirectiveOf returns the payload for a KindUsingDirective decl.
func (t *Table) UsingDirectiveOf(id DeclID) (*UsingDirectiveData, bool) {
	d := t.Decl(id)
	if d == nil || d.Kind != KindUsingDirective {
		return nil, false
	}
	return t.UsingDirectives.Get(d.Payload), true
}

// Children lists the immediate child decls found in the scope a namespace
// or class decl owns.
func (t *Table) Children(id DeclID) []DeclID {
	d := t.Decl(id)
	if d == nil {
		return nil
	}
	var scopeID ScopeID
	switch d.Kind {
	case KindNamespace:
		if ns, ok := t.Namespace(id); ok {
			scopeID = ns.Scope
		}
	case KindClass:
		if cd, ok := t.Class(id); ok {
			scopeID = cd.Scope
		}
	default:
		return nil
	}
	s := t.Scope(scopeID)
	if s == nil {
		return nil
	}
	return s.Decls
}
