package scope

import (
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// underlyingClassOrEnum strips pointer, reference, and array layers to find
// the class or enum decl (if any) a type ultimately names.
func underlyingClassOrEnum(t typesys.Type, types *typesys.Interner) (decl.DeclID, bool) {
	switch t.Kind {
	case typesys.KindClass, typesys.KindEnum:
		return decl.DeclID(t.Decl), true
	case typesys.KindPointer, typesys.KindReference, typesys.KindArray:
		elem, ok := types.Lookup(t.Elem)
		if !ok {
			return decl.NoDeclID, false
		}
		return underlyingClassOrEnum(elem, types)
	default:
		return decl.NoDeclID, false
	}
}

// AssociatedNamespaces computes the namespaces argument-dependent lookup
// searches for a call's argument types, per §4.B: "the namespace containing
// the type's decl, and any enclosing namespaces."
func (r *Resolver) AssociatedNamespaces(argTypes []typesys.TypeID, types *typesys.Interner) []decl.ScopeID {
	seen := make(map[decl.ScopeID]bool)
	var result []decl.ScopeID
	add := func(id decl.ScopeID) {
		if id.IsValid() && !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	for _, tid := range argTypes {
		t, ok := types.Lookup(tid)
		if !ok {
			continue
		}
		classOrEnum, ok := underlyingClassOrEnum(t, types)
		if !ok {
			continue
		}
		d := r.table.Decl(classOrEnum)
		if d == nil {
			continue
		}
		for s := d.Parent; s.IsValid(); {
			scope := r.table.Scope(s)
			if scope == nil {
				break
			}
			if scope.Kind == decl.ScopeNamespace {
				add(s)
			}
			s = scope.Parent
		}
	}
	return result
}

// LookupWithADL merges ordinary unqualified function lookup with candidates
// found via argument-dependent lookup in the argument types' associated
// namespaces, per §4.B.
func (r *Resolver) LookupWithADL(name source.StringID, argTypes []typesys.TypeID, types *typesys.Interner, span source.Span) []decl.DeclID {
	candidates := r.LookupOverloadSet(name, span)
	for _, ns := range r.AssociatedNamespaces(argTypes, types) {
		candidates = append(candidates, r.LookupInScope(ns, name, FunctionsOnly, span)...)
	}
	return dedupe(candidates)
}
