package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/layout"
	"cppmir/internal/mangle"
	"cppmir/internal/source"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

// LowerFunction lowers one function decl's body into a Function. It is the
// package's sole entry point: everything else in this package exists to
// support it.
//
// layoutEngine and tmplEngine may be nil when the translation unit being
// lowered has no polymorphic classes or templates respectively; a nil
// layoutEngine lowers a virtual method call as a static Call instead of a
// vtable dispatch, and a nil tmplEngine turns a call through a function
// template name into an unresolved-target diagnostic. mangler may be nil too, in which case the emitted
// Function's Symbol is left empty (fine for interpretation/testing, not
// for §6.2 emission).
func LowerFunction(table *decl.Table, types *typesys.Interner, tree *ast.Tree, strings *source.Interner, layoutEngine *layout.Engine, tmplEngine *template.Engine, mangler *mangle.Mangler, reporter diag.Reporter, fnDecl decl.DeclID) *Function {
	d := table.Decl(fnDecl)
	if d == nil {
		return nil
	}
	fn, ok := table.Function(fnDecl)
	if !ok {
		return nil
	}

	symbol := ""
	if mangler != nil {
		symbol = mangler.Mangle(fnDecl)
	}

	f := &Function{
		Decl:       fnDecl,
		Name:       d.Name,
		Symbol:     symbol,
		Span:       d.Span,
		ReturnType: fn.ReturnType,
		Entry:      NoBlockID,
	}
	b := newFuncBuilder(table, types, tree, strings, layoutEngine, tmplEngine, reporter)
	b.f = f
	b.pushScope()

	// Local 0 is always the return slot, per the return-by-reference
	// convention (§6.2), even for a void function (its type is simply
	// void and no MIR ever writes to it).
	b.newLocal(fn.ReturnType, source.NoStringID, d.Span)

	if fn.OwningClass.IsValid() && !fn.IsStatic {
		classTy := types.Intern(typesys.MakeClass(typesys.DeclRef(fn.OwningClass)))
		ptrTy := types.Intern(typesys.MakePointer(classTy, fn.IsConst, false))
		b.thisLocal = b.newLocal(ptrTy, source.NoStringID, d.Span)
		b.ownerClass = fn.OwningClass
	}

	f.ParamCount = len(fn.Params)
	for _, p := range fn.Params {
		local := b.newLocal(p.Type, p.Name, d.Span)
		if p.Name != source.NoStringID {
			b.declareLocal(p.Name, local)
		}
	}

	if fn.IsDeleted || fn.IsPure {
		f.Poisoned = true
		f.Entry = b.newBlock()
		b.startBlock(f.Entry)
		b.setTerm(Terminator{Kind: TermUnreachable})
		return f
	}

	body, ok := tree.Function(fn.Origin)
	if !ok || !body.Body.IsValid() {
		f.Poisoned = true
		f.Entry = b.newBlock()
		b.startBlock(f.Entry)
		b.setTerm(Terminator{Kind: TermUnreachable})
		return f
	}

	f.Entry = b.newBlock()
	b.startBlock(f.Entry)
	if fn.Role == decl.RoleConstructor {
		b.lowerCtorPrologue(fn, body, d.Span)
	}
	b.lowerStmt(body.Body)
	fallthroughBlock := b.cur
	b.popScope()

	completeTerminators(f, fallthroughBlock, fn.ReturnType, types)
	return f
}

// completeTerminators enforces the terminator-discipline invariant: every
// block ends with exactly one terminator by the time lowering returns.
// fallthroughBlock is whichever block was current when the body finished
// lowering; it falls off the end of the function implicitly (legal in
// C++ only for a void return), so it alone gets a bare Return instead of
// Unreachable. Every other still-untermined block is genuinely dead code
// and becomes Unreachable, mirroring the corpus's own final lowering pass.
func completeTerminators(f *Function, fallthroughBlock BlockID, returnType typesys.TypeID, types *typesys.Interner) {
	isVoid := false
	if rt, ok := types.Lookup(returnType); ok {
		isVoid = rt.Kind == typesys.KindVoid
	}
	for i := range f.Blocks {
		blk := &f.Blocks[i]
		if blk.Term.IsSet() {
			continue
		}
		if isVoid && blk.ID == fallthroughBlock {
			blk.Term = Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: false}}
			continue
		}
		blk.Term = Terminator{Kind: TermUnreachable}
	}
}
