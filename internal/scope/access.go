package scope

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

// owningClassOf returns the class a member decl belongs to, or NoDeclID for
// decls that are not class members.
func (r *Resolver) owningClassOf(id decl.DeclID) decl.DeclID {
	d := r.table.Decl(id)
	if d == nil {
		return decl.NoDeclID
	}
	switch d.Kind {
	case decl.KindFunction:
		if fd, ok := r.table.Function(id); ok {
			return fd.OwningClass
		}
	case decl.KindVariable:
		if vd, ok := r.table.Variable(id); ok {
			return vd.OwningClass
		}
	}
	return decl.NoDeclID
}

// IsDerivedFrom reports whether derived has base among its direct or
// indirect base classes.
func (r *Resolver) IsDerivedFrom(derived, base decl.DeclID) bool {
	if derived == base {
		return true
	}
	cd, ok := r.table.Class(derived)
	if !ok {
		return false
	}
	for _, b := range cd.Bases {
		if r.IsDerivedFrom(b.Base, base) {
			return true
		}
	}
	return false
}

// accessible reports whether member (declared with the given owner and
// visibility) may be named from within fromClass, applying the standard
// C++ rule: public is always visible; protected requires fromClass to be
// the owner or derived from it; private requires fromClass to be the
// owner exactly.
func (r *Resolver) accessible(owner decl.DeclID, vis decl.Visibility, fromClass decl.DeclID) bool {
	switch vis {
	case decl.VisPublic:
		return true
	case decl.VisProtected:
		return fromClass.IsValid() && r.IsDerivedFrom(fromClass, owner)
	case decl.VisPrivate:
		return fromClass == owner
	default:
		return true
	}
}

// FilterAccessible narrows candidates to those visible from fromClass
// (NoDeclID for a free, non-member context). If every candidate is a class
// member and every one is filtered out, it reports LookupAccessViolation
// per §4.B: "AccessViolation when the only candidates are inaccessible
// members."
func (r *Resolver) FilterAccessible(candidates []decl.DeclID, fromClass decl.DeclID, name source.StringID, span source.Span) []decl.DeclID {
	if len(candidates) == 0 {
		return nil
	}
	visible := make([]decl.DeclID, 0, len(candidates))
	sawMember := false
	for _, id := range candidates {
		owner := r.owningClassOf(id)
		if !owner.IsValid() {
			visible = append(visible, id)
			continue
		}
		sawMember = true
		d := r.table.Decl(id)
		if d == nil {
			continue
		}
		if r.accessible(owner, d.Visibility, fromClass) {
			visible = append(visible, id)
		}
	}
	if len(visible) == 0 && sawMember {
		r.reportAccessViolation(name, span)
	}
	return visible
}

func (r *Resolver) reportAccessViolation(name source.StringID, span source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' is not accessible in this context", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.LookupAccessViolation, span, msg).Emit()
}
