package scope

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

// KindMask restricts a lookup to specific decl kinds.
type KindMask uint32

const (
	KindMaskNone KindMask = 0
	KindMaskAny  KindMask = ^KindMask(0)
)

// Mask converts a decl kind into its KindMask bit.
func Mask(k decl.Kind) KindMask { return KindMask(1 << uint(k)) }

// FunctionsOnly restricts a lookup to function decls, the mask overload
// resolution and ADL candidate collection use.
var FunctionsOnly = Mask(decl.KindFunction)

func matchKind(mask KindMask, k decl.Kind) bool {
	return mask == KindMaskAny || mask&Mask(k) != 0
}

func allowsOverload(k decl.Kind) bool { return k == decl.KindFunction }

// canShareName reports whether next may be declared alongside an existing
// decl of kind existing under the same name in the same scope: function
// overloads, and namespaces reopened across multiple declarations.
func canShareName(existing, next decl.Kind) bool {
	if existing != next {
		return false
	}
	return allowsOverload(next) || existing == decl.KindNamespace
}

// Resolver drives scope entry/exit, declaration, and lookup over a Table
// built by internal/decl. It holds no decl/scope data itself.
type Resolver struct {
	table    *decl.Table
	reporter diag.Reporter
	stack    []decl.ScopeID
}

// New wires a resolver to table, with the global namespace scope as the
// initial (and outermost) entry on the scope stack.
func New(table *decl.Table, reporter diag.Reporter) *Resolver {
	return &Resolver{
		table:    table,
		reporter: reporter,
		stack:    []decl.ScopeID{table.GlobalScope},
	}
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() decl.ScopeID {
	if len(r.stack) == 0 {
		return decl.NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope of the current scope, pushes it, and returns
// its ID.
func (r *Resolver) Enter(kind decl.ScopeKind, owner decl.DeclID, span source.Span) decl.ScopeID {
	child := r.table.NewScope(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, child)
	return child
}

// EnterExisting pushes an already-allocated scope (e.g. a class's own scope,
// created alongside its Decl by decl.Table.NewClass) onto the stack.
func (r *Resolver) EnterExisting(id decl.ScopeID) {
	r.stack = append(r.stack, id)
}

// Leave pops the current scope. If expected does not match the scope being
// popped, it emits a warning instead of silently accepting a mis-sequenced
// caller — a mismatch here can only mean the AST walk driving the resolver
// entered and left scopes out of order.
func (r *Resolver) Leave(expected decl.ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if expected.IsValid() && top != expected {
		r.reportScopeMismatch(expected, top)
	}
}

func (r *Resolver) reportScopeMismatch(expected, actual decl.ScopeID) {
	if r.reporter == nil {
		return
	}
	var primary source.Span
	if s := r.table.Scope(actual); s != nil {
		primary = s.Span
	}
	msg := fmt.Sprintf("scope stack mismatch: closing scope #%d while expecting #%d", actual, expected)
	diag.ReportWarning(r.reporter, diag.LookupScopeMismatch, primary, msg).Emit()
}

// Bind registers an already-allocated decl into its own Parent scope's name
// index, reporting LookupDuplicateSymbol if the name is already bound to an
// incompatible decl in that same scope. Names that legitimately share a
// scope (function overloads, reopened namespaces) coexist silently.
func (r *Resolver) Bind(id decl.DeclID) bool {
	d := r.table.Decl(id)
	if d == nil {
		return false
	}
	scope := r.table.Scope(d.Parent)
	if scope == nil {
		return false
	}
	if existing := scope.NameIndex[d.Name]; len(existing) > 0 {
		for _, other := range existing {
			od := r.table.Decl(other)
			if od == nil || canShareName(od.Kind, d.Kind) {
				continue
			}
			r.reportDuplicate(d.Name, d.Span, od.Span)
			return false
		}
	}
	scope.Decls = append(scope.Decls, id)
	scope.NameIndex[d.Name] = append(scope.NameIndex[d.Name], id)
	return true
}

func (r *Resolver) reportDuplicate(name source.StringID, span, prevSpan source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("duplicate declaration of '%s'", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.LookupDuplicateSymbol, span, msg).
		WithNote(prevSpan, "previous declaration here").
		Emit()
}

func filterByMask(ids []decl.DeclID, mask KindMask, table *decl.Table) []decl.DeclID {
	if mask == KindMaskAny {
		return ids
	}
	out := make([]decl.DeclID, 0, len(ids))
	for _, id := range ids {
		if d := table.Decl(id); d != nil && matchKind(mask, d.Kind) {
			out = append(out, id)
		}
	}
	return out
}

func dedupe(ids []decl.DeclID) []decl.DeclID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[decl.DeclID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
