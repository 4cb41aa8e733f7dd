package decl

import "cppmir/internal/source"

// ScopeKind enumerates the lexical scope categories the resolver walks.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeNamespace
	ScopeClass
	ScopeFunction
	ScopeBlock
	ScopeTemplateParameter
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNamespace:
		return "namespace"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeTemplateParameter:
		return "template-parameter"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope in the tree rooted at the global namespace.
// NameIndex binds each visible unqualified name to the ordered set of decls
// introduced under that name directly in this scope (overloaded functions
// share a name; anything else sharing a name is a conflict caught at
// declaration time). UsingDirectives holds the namespace scopes this scope
// transitively searches without owning their bindings.
type Scope struct {
	Kind            ScopeKind
	Parent          ScopeID
	Owner           DeclID
	Span            source.Span
	NameIndex       map[source.StringID][]DeclID
	Decls           []DeclID
	Children        []ScopeID
	UsingDirectives []ScopeID
	// Transparent marks an unscoped-enum scope: names declared here are
	// also visible, unqualified, in Parent.
	Transparent bool
}
