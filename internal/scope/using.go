package scope

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

// DeclareUsingDeclaration injects target's name into the current scope,
// bound to target itself, per §4.B: "using declarations inject a named
// binding into the enclosing scope". A UsingDeclaration decl is also
// recorded for provenance (diagnostics, mangling of the injected name's
// origin) but lookup resolves straight through to target.
func (r *Resolver) DeclareUsingDeclaration(target decl.DeclID, span source.Span) (decl.DeclID, bool) {
	td := r.table.Decl(target)
	if td == nil {
		return decl.NoDeclID, false
	}
	wrapper := r.table.NewUsingDeclaration(td.Name, r.CurrentScope(), span, target)
	scope := r.table.Scope(r.CurrentScope())
	if scope == nil {
		return wrapper, false
	}
	if existing := scope.NameIndex[td.Name]; len(existing) > 0 {
		for _, other := range existing {
			od := r.table.Decl(other)
			if od == nil || canShareName(od.Kind, td.Kind) {
				continue
			}
			r.reportUsingConflict(td.Name, span, od.Span)
			return wrapper, false
		}
	}
	scope.Decls = append(scope.Decls, target)
	scope.NameIndex[td.Name] = append(scope.NameIndex[td.Name], target)
	return wrapper, true
}

func (r *Resolver) reportUsingConflict(name source.StringID, span, prevSpan source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("using-declaration for '%s' conflicts with an existing declaration", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.LookupUsingConflict, span, msg).
		WithNote(prevSpan, "previous declaration here").
		Emit()
}

// AddUsingDirective adds target to the current scope's set of transitively
// searched namespaces, per §4.B: "using directives add the target
// namespace to the set of namespaces transitively searched at lookup time,
// without injecting bindings."
func (r *Resolver) AddUsingDirective(target decl.ScopeID, span source.Span) decl.DeclID {
	id := r.table.NewUsingDirective(r.CurrentScope(), span, target)
	if s := r.table.Scope(r.CurrentScope()); s != nil {
		s.UsingDirectives = append(s.UsingDirectives, target)
	}
	return id
}
