package template

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// Engine instantiates templates against a table shared with the rest of
// the translation unit's semantic model, memoising by (Template, Binding)
// so identical instantiations share one Decl (§9's sharing invariant).
type Engine struct {
	table    *decl.Table
	types    *typesys.Interner
	tree     *ast.Tree
	strings  *source.Interner
	reporter diag.Reporter

	cache  map[cacheKey]decl.DeclID
	stack  map[decl.DeclID]int // recursion depth per template, guards runaway instantiation
	origin map[decl.DeclID]instantiationRecord
}

type cacheKey struct {
	Template decl.DeclID
	Binding  string
}

// instantiationRecord remembers which template and binding produced a
// given instantiated decl, so a caller with only the resulting DeclID (the
// mangler, notably) can recover the canonical binding.
type instantiationRecord struct {
	Template decl.DeclID
	Binding  Binding
}

// maxInstantiationDepth bounds recursive template instantiation (e.g. a
// template that instantiates itself with a strictly smaller argument
// converging, or a mistaken one that doesn't). Clang's default recursion
// limit is 1024; this system need not match it, only reject runaway
// growth with a diagnostic instead of exhausting memory.
const maxInstantiationDepth = 256

// New builds an Engine. tree may be nil if requires-clauses never
// reference other concepts (constant-only clauses still evaluate).
// strings resolves a requires-clause name reference against the builtin
// type-trait table in requires.go; it may be nil under the same
// condition as tree, in which case a name reference can never match a
// builtin trait and falls through to concept lookup as before.
func New(table *decl.Table, types *typesys.Interner, tree *ast.Tree, strings *source.Interner, reporter diag.Reporter) *Engine {
	return &Engine{
		table:    table,
		types:    types,
		tree:     tree,
		strings:  strings,
		reporter: reporter,
		cache:    make(map[cacheKey]decl.DeclID, 16),
		stack:    make(map[decl.DeclID]int, 8),
		origin:   make(map[decl.DeclID]instantiationRecord, 16),
	}
}

func (e *Engine) reportRecursive(tmplID decl.DeclID) {
	if e.reporter == nil {
		return
	}
	d := e.table.Decl(tmplID)
	var span source.Span
	if d != nil {
		span = d.Span
	}
	diag.ReportError(e.reporter, diag.TemplateRecursiveInstantiation, span, "template instantiation depth exceeded").Emit()
}

func (e *Engine) reportSubstitutionFailure(tmplID decl.DeclID) {
	if e.reporter == nil {
		return
	}
	d := e.table.Decl(tmplID)
	var span source.Span
	if d != nil {
		span = d.Span
	}
	diag.ReportError(e.reporter, diag.TemplateSubstitutionFailure, span, "template substitution failed").Emit()
}
