package scope

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

// ownerScope returns the scope a namespace or class decl owns, or
// NoScopeID for decls that do not introduce a scope of their own.
func (r *Resolver) ownerScope(id decl.DeclID) decl.ScopeID {
	d := r.table.Decl(id)
	if d == nil {
		return decl.NoScopeID
	}
	switch d.Kind {
	case decl.KindNamespace:
		if ns, ok := r.table.Namespace(id); ok {
			return ns.Scope
		}
	case decl.KindClass:
		if cd, ok := r.table.Class(id); ok {
			return cd.Scope
		}
	}
	return decl.NoScopeID
}

// QualifyScope resolves a qualifier path (the "A::B" in "A::B::x") to the
// scope it names, per §4.B: "evaluates the qualifier to a scope". The
// leading segment undergoes ordinary unqualified lookup from start; every
// following segment is looked up restricted to the scope the previous
// segment named.
func (r *Resolver) QualifyScope(start decl.ScopeID, path []source.StringID, span source.Span) (decl.ScopeID, bool) {
	if len(path) == 0 {
		return start, true
	}
	head, ok := r.lookupFrom(start, path[0], KindMaskAny, span)
	if !ok || len(head) == 0 {
		return decl.NoScopeID, false
	}
	current := r.ownerScope(head[len(head)-1])
	if !current.IsValid() {
		r.reportQualifiedNoScope(path[0], span)
		return decl.NoScopeID, false
	}
	for _, seg := range path[1:] {
		hits := r.LookupInScope(current, seg, KindMaskAny, span)
		if len(hits) == 0 {
			r.reportNotFound(seg, span)
			return decl.NoScopeID, false
		}
		current = r.ownerScope(hits[len(hits)-1])
		if !current.IsValid() {
			r.reportQualifiedNoScope(seg, span)
			return decl.NoScopeID, false
		}
	}
	return current, true
}

func (r *Resolver) reportQualifiedNoScope(name source.StringID, span source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' does not name a namespace or class", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.LookupQualifiedNoScope, span, msg).Emit()
}

// LookupInScope performs name lookup restricted to scopeID: its own
// bindings and using-directive imports, and — when scopeID is a class
// scope and nothing was found directly in it — its base classes, per
// §4.B's base-class-lookup rule (a name found in the class itself hides
// all base members, so bases are only consulted on a miss).
func (r *Resolver) LookupInScope(scopeID decl.ScopeID, name source.StringID, mask KindMask, span source.Span) []decl.DeclID {
	s := r.table.Scope(scopeID)
	if s == nil {
		return nil
	}
	hits := r.collectAtScope(scopeID, name, mask, make(map[decl.ScopeID]bool))
	if len(hits) > 0 || s.Kind != decl.ScopeClass {
		return hits
	}
	cd, ok := r.table.Class(s.Owner)
	if !ok {
		return nil
	}
	return r.lookupInBases(cd, name, mask, span, make(map[decl.DeclID]bool))
}

// QualifiedLookup resolves path::name, evaluating the qualifier to a scope
// and then performing LookupInScope against it.
func (r *Resolver) QualifiedLookup(start decl.ScopeID, path []source.StringID, name source.StringID, mask KindMask, span source.Span) (decl.DeclID, bool) {
	scopeID, ok := r.QualifyScope(start, path, span)
	if !ok {
		return decl.NoDeclID, false
	}
	hits := r.LookupInScope(scopeID, name, mask, span)
	if len(hits) == 0 {
		r.reportNotFound(name, span)
		return decl.NoDeclID, false
	}
	if r.hasNonOverloadableConflict(hits) {
		r.reportAmbiguous(name, span, hits)
		return decl.NoDeclID, false
	}
	return hits[len(hits)-1], true
}

// lookupInBases performs depth-first traversal of a class's direct bases.
// A name found via two independent non-virtual base subobjects is reported
// as ambiguous and yields no result; a virtual base is visited once
// regardless of how many paths reach it, so a name found only through it is
// unambiguous no matter how many derived paths lead there.
func (r *Resolver) lookupInBases(cd *decl.ClassData, name source.StringID, mask KindMask, span source.Span, visitedVirtual map[decl.DeclID]bool) []decl.DeclID {
	var fromBases []decl.DeclID
	sawNonVirtualHit := false
	ambiguous := false
	for _, base := range cd.Bases {
		if base.Virtual {
			if visitedVirtual[base.Base] {
				continue
			}
			visitedVirtual[base.Base] = true
		}
		baseCD, ok := r.table.Class(base.Base)
		if !ok {
			continue
		}
		hits := r.collectAtScope(baseCD.Scope, name, mask, make(map[decl.ScopeID]bool))
		if len(hits) == 0 {
			hits = r.lookupInBases(baseCD, name, mask, span, visitedVirtual)
		}
		if len(hits) == 0 {
			continue
		}
		if !base.Virtual {
			if sawNonVirtualHit {
				ambiguous = true
			}
			sawNonVirtualHit = true
		}
		fromBases = append(fromBases, hits...)
	}
	if ambiguous {
		r.reportAmbiguous(name, span, fromBases)
		return nil
	}
	return dedupe(fromBases)
}
