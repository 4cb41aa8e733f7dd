// Package context owns one translation unit's worth of wiring (§5): the
// decl table, type interner, layout engine, template engine, and mangler
// a single consumed AST needs threaded through it, plus the diagnostic
// bag every component along the way reports into. There is no teacher
// analog — Surge's `internal/driver` wires a lexer/parser/sema pipeline
// this system doesn't have — so the shape here is grounded directly on
// §5's context-ownership description: "each translation unit owns its
// own Decl table, type interner, and diagnostic sink; nothing here is
// shared across translation units except read-only interned strings."
package context

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/layout"
	"cppmir/internal/mangle"
	"cppmir/internal/mir"
	"cppmir/internal/source"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

// TU bundles one translation unit's components, wired together the way
// §5 requires: the type interner defers class layout queries to the
// layout engine (`typesys.SetLayoutProvider`), and the layout engine in
// turn defers a vtable slot's external name to the mangler
// (`layout.Engine.SetMangler`) — component H sits downstream of F, F
// downstream of C, per the dependency order the specification lists.
type TU struct {
	Strings   *source.Interner
	Tree      *ast.Tree
	Table     *decl.Table
	Types     *typesys.Interner
	Layout    *layout.Engine
	Templates *template.Engine
	Mangler   *mangle.Mangler
	Diags     *diag.Bag
}

// Options configures a TU. A zero Options is usable: it selects
// x86_64-linux-gnu and a diagnostic cap of 100, matching the teacher
// CLI's own `--max-diagnostics` default.
type Options struct {
	Target         layout.Target
	MaxDiagnostics int
	Hints          decl.Hints
}

func (o Options) withDefaults() Options {
	if o.Target.PtrSize == 0 {
		o.Target = layout.X86_64LinuxGNU()
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	return o
}

// New builds a fresh TU over tree, allocating its own decl table and type
// interner. strings may be nil, in which case a fresh interner is
// allocated (mirroring `decl.NewTable`'s own nil-strings convenience).
func New(strings *source.Interner, tree *ast.Tree, opts Options) *TU {
	opts = opts.withDefaults()
	if strings == nil {
		strings = source.NewInterner()
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	table := decl.NewTable(opts.Hints, strings)
	types := typesys.NewInterner()
	layoutEngine := layout.New(table, types, opts.Target, reporter)
	templates := template.New(table, types, tree, strings, reporter)
	mangler := mangle.New(table, types, templates, reporter)

	types.SetLayoutProvider(layoutEngine)
	layoutEngine.SetMangler(mangler)

	return &TU{
		Strings:   strings,
		Tree:      tree,
		Table:     table,
		Types:     types,
		Layout:    layoutEngine,
		Templates: templates,
		Mangler:   mangler,
		Diags:     bag,
	}
}

// Reporter returns the shared diagnostic sink, for callers (component B's
// scope resolver, notably) that need a diag.Reporter rather than the
// concrete Bag.
func (tu *TU) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: tu.Diags}
}

// Functions returns every KindFunction decl currently in the table, in
// allocation order — the order component G's tests already lower in, and
// a stable order for §8's determinism property to hold over.
func (tu *TU) Functions() []decl.DeclID {
	all := tu.Table.Decls.Slice()
	ids := make([]decl.DeclID, 0, len(all))
	for i, d := range all {
		if d.Kind == decl.KindFunction {
			ids = append(ids, decl.DeclID(i+1))
		}
	}
	return ids
}

// LowerFunction lowers one function decl through component G with this
// TU's wired layout engine, template engine, mangler, and reporter.
func (tu *TU) LowerFunction(fnDecl decl.DeclID) *mir.Function {
	return mir.LowerFunction(tu.Table, tu.Types, tu.Tree, tu.Strings, tu.Layout, tu.Templates, tu.Mangler, tu.Reporter(), fnDecl)
}

// LowerAll lowers every function decl the table currently holds, in the
// same order Functions reports them.
func (tu *TU) LowerAll() []*mir.Function {
	fns := tu.Functions()
	out := make([]*mir.Function, 0, len(fns))
	for _, id := range fns {
		if f := tu.LowerFunction(id); f != nil {
			out = append(out, f)
		}
	}
	return out
}
