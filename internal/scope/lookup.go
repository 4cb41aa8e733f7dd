package scope

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

// collectAtScope gathers scope's own bindings for name plus everything
// transitively visible through its active using-directives, per §4.B:
// "merging the target scope's own bindings with all names transitively
// imported by active using directives". visited guards against using-
// directive cycles (legal in C++, e.g. two namespaces each using the
// other) without infinite recursion.
func (r *Resolver) collectAtScope(scopeID decl.ScopeID, name source.StringID, mask KindMask, visited map[decl.ScopeID]bool) []decl.DeclID {
	if visited[scopeID] {
		return nil
	}
	visited[scopeID] = true
	s := r.table.Scope(scopeID)
	if s == nil {
		return nil
	}
	result := append([]decl.DeclID(nil), filterByMask(s.NameIndex[name], mask, r.table)...)
	for _, target := range s.UsingDirectives {
		result = append(result, r.collectAtScope(target, name, mask, visited)...)
	}
	return dedupe(result)
}

// LookupUnqualifiedAll walks from the current scope outward, per §4.B,
// stopping at the first scope level whose collected result set (own
// bindings merged with using-directive imports) is non-empty. It reports
// LookupNameAmbiguous when that set names more than one non-overloadable
// entity and returns it anyway so callers doing error recovery still see
// candidates; ok is false when that diagnostic fired, and also when no
// scope level yields a match, which reports nothing.
func (r *Resolver) LookupUnqualifiedAll(name source.StringID, mask KindMask, span source.Span) ([]decl.DeclID, bool) {
	return r.lookupFrom(r.CurrentScope(), name, mask, span)
}

func (r *Resolver) lookupFrom(start decl.ScopeID, name source.StringID, mask KindMask, span source.Span) ([]decl.DeclID, bool) {
	if mask == KindMaskNone {
		return nil, false
	}
	scopeID := start
	for scopeID.IsValid() {
		hits := r.collectAtScope(scopeID, name, mask, make(map[decl.ScopeID]bool))
		if len(hits) > 0 {
			if r.hasNonOverloadableConflict(hits) {
				r.reportAmbiguous(name, span, hits)
				return hits, false
			}
			return hits, true
		}
		s := r.table.Scope(scopeID)
		if s == nil {
			break
		}
		scopeID = s.Parent
	}
	return nil, false
}

// hasNonOverloadableConflict reports whether hits contains two or more
// decls that cannot coexist as an overload set (any pair not both
// functions).
func (r *Resolver) hasNonOverloadableConflict(hits []decl.DeclID) bool {
	if len(hits) < 2 {
		return false
	}
	for _, id := range hits {
		d := r.table.Decl(id)
		if d == nil || d.Kind != decl.KindFunction {
			return true
		}
	}
	return false
}

func (r *Resolver) reportAmbiguous(name source.StringID, span source.Span, candidates []decl.DeclID) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("reference to '%s' is ambiguous", r.table.Strings.MustLookup(name))
	b := diag.ReportError(r.reporter, diag.LookupNameAmbiguous, span, msg)
	for _, id := range candidates {
		if d := r.table.Decl(id); d != nil {
			b = b.WithNote(d.Span, "candidate found here")
		}
	}
	b.Emit()
}

func (r *Resolver) reportNotFound(name source.StringID, span source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' was not declared in this scope", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.LookupNameNotFound, span, msg).Emit()
}

// Lookup performs unqualified lookup expecting a single non-overloaded
// entity (a type name, a namespace, a variable). Reports NameNotFound if
// the search reaches the global scope's parent (none) with nothing found.
func (r *Resolver) Lookup(name source.StringID, mask KindMask, span source.Span) (decl.DeclID, bool) {
	hits, ok := r.LookupUnqualifiedAll(name, mask, span)
	if !ok && len(hits) == 0 {
		r.reportNotFound(name, span)
		return decl.NoDeclID, false
	}
	if !ok {
		return decl.NoDeclID, false // ambiguity already reported
	}
	return hits[len(hits)-1], true
}

// LookupOverloadSet performs unqualified lookup restricted to functions,
// returning every visible overload for use as an overload-resolution
// candidate set. An empty result is not itself an error; the caller (with
// ADL results merged in) decides whether the call has no viable candidate.
func (r *Resolver) LookupOverloadSet(name source.StringID, span source.Span) []decl.DeclID {
	hits, _ := r.lookupFrom(r.CurrentScope(), name, FunctionsOnly, span)
	return hits
}
