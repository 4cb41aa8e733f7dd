package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/layout"
	"cppmir/internal/overload"
	"cppmir/internal/source"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

// funcBuilder holds the mutable state for lowering one function. It is
// created fresh per function by LowerFunction and discarded once the
// Function it produces is returned, mirroring the per-function
// funcLowerer scoping the corpus's own IR builders use.
type funcBuilder struct {
	table    *decl.Table
	types    *typesys.Interner
	tree     *ast.Tree
	strings  *source.Interner
	layout   *layout.Engine // nil: no polymorphic-class support requested
	tmpl     *template.Engine
	reporter diag.Reporter

	f   *Function
	cur BlockID

	// scopes is a stack of name->local maps, one per lexically nested
	// block; lookupLocal walks it innermost-first, shadowing outer names
	// the way nested C++ blocks do.
	scopes []map[source.StringID]LocalID

	loops []loopContext

	// thisLocal is the local holding the receiver pointer inside a method
	// body, or NoLocalID when lowering a free function.
	thisLocal LocalID

	// ownerClass is the class a method belongs to, used to resolve
	// unqualified member names and `this` expressions.
	ownerClass decl.DeclID
}

// loopContext records the two targets `break`/`continue` resolve to
// inside the loop currently being lowered.
type loopContext struct {
	breakTarget    BlockID
	continueTarget BlockID
}

func newFuncBuilder(table *decl.Table, types *typesys.Interner, tree *ast.Tree, strings *source.Interner, layoutEngine *layout.Engine, tmplEngine *template.Engine, reporter diag.Reporter) *funcBuilder {
	return &funcBuilder{
		table:     table,
		types:     types,
		tree:      tree,
		strings:   strings,
		layout:    layoutEngine,
		tmpl:      tmplEngine,
		reporter:  reporter,
		thisLocal: NoLocalID,
	}
}

func (b *funcBuilder) pushScope() {
	b.scopes = append(b.scopes, make(map[source.StringID]LocalID, 4))
}

func (b *funcBuilder) popScope() {
	if len(b.scopes) == 0 {
		return
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *funcBuilder) declareLocal(name source.StringID, local LocalID) {
	if len(b.scopes) == 0 {
		b.pushScope()
	}
	b.scopes[len(b.scopes)-1][name] = local
}

func (b *funcBuilder) lookupLocal(name source.StringID) (LocalID, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if id, ok := b.scopes[i][name]; ok {
			return id, true
		}
	}
	return NoLocalID, false
}

func (b *funcBuilder) curBlock() *Block { return b.f.block(b.cur) }

func (b *funcBuilder) newBlock() BlockID {
	id := BlockID(len(b.f.Blocks))
	b.f.Blocks = append(b.f.Blocks, Block{ID: id, Term: Terminator{Kind: TermNone}})
	return id
}

func (b *funcBuilder) startBlock(id BlockID) { b.cur = id }

func (b *funcBuilder) setTerm(t Terminator) {
	blk := b.curBlock()
	if blk == nil || blk.Terminated() {
		return
	}
	blk.Term = t
}

func (b *funcBuilder) emit(s Statement) {
	blk := b.curBlock()
	if blk == nil || blk.Terminated() {
		return
	}
	blk.Statements = append(blk.Statements, s)
}

func (b *funcBuilder) newLocal(ty typesys.TypeID, name source.StringID, span source.Span) LocalID {
	id := LocalID(len(b.f.Locals))
	b.f.Locals = append(b.f.Locals, Local{Type: ty, Name: name, Span: span})
	return id
}

func (b *funcBuilder) newTemp(ty typesys.TypeID, span source.Span) LocalID {
	return b.newLocal(ty, source.NoStringID, span)
}

func (b *funcBuilder) reportUnsupported(span source.Span, msg string) {
	if b.reporter == nil {
		return
	}
	diag.ReportError(b.reporter, diag.LoweringUnsupportedConstruct, span, msg).Emit()
}

func (b *funcBuilder) reportUnresolvedTarget(span source.Span, msg string) {
	if b.reporter == nil {
		return
	}
	diag.ReportError(b.reporter, diag.LoweringUnresolvedTarget, span, msg).Emit()
}

// resolveCallee looks up the plain (non-overloaded-by-argument) function
// name a call spells and lets internal/overload pick among any overload
// set found, using argTypes already lowered for the call's arguments.
// Template names go through internal/template.Engine.Resolve instead, so
// a template instantiation triggered by this call completes before the
// call site is lowered, matching the depth-first instantiation ordering
// §5 requires.
func (b *funcBuilder) resolveCallee(name source.StringID, span source.Span, argTypes []typesys.TypeID) (decl.DeclID, bool) {
	global := b.table.Scope(b.table.GlobalScope)
	if global == nil {
		return decl.NoDeclID, false
	}
	var candidates []overload.Candidate
	for _, id := range global.NameIndex[name] {
		d := b.table.Decl(id)
		if d == nil {
			continue
		}
		switch d.Kind {
		case decl.KindFunction:
			candidates = append(candidates, overload.Candidate{Decl: id})
		case decl.KindTemplate:
			if b.tmpl == nil {
				continue
			}
			if cand, ok := b.tmpl.Resolve(id, argTypes); ok {
				candidates = append(candidates, cand)
			}
		}
	}
	if len(candidates) == 0 {
		b.reportUnresolvedTarget(span, "call target could not be resolved to a known function")
		return decl.NoDeclID, false
	}
	return overload.ResolveCall(b.table, b.types, candidates, argTypes, b.reporter, span, name)
}
