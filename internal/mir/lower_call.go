package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// lowerCall lowers a call expression. A call always ends the current block:
// it becomes a Call or VirtualCall terminator with a `normal` successor
// holding the rest of the enclosing statement, matching §4.G's rule that a
// call site is a control-flow edge, not an ordinary instruction.
func (b *funcBuilder) lowerCall(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	call, ok := b.tree.CallOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	callee := b.tree.Expr(call.Callee)
	if callee == nil {
		return Operand{}, typesys.NoTypeID
	}
	switch callee.Kind {
	case ast.ExprMemberAccess:
		return b.lowerMethodCall(call, e)
	case ast.ExprNameRef:
		return b.lowerPlainCall(call, e)
	default:
		b.reportUnsupported(e.Span, "call target must be a name or member access")
		return Operand{}, typesys.NoTypeID
	}
}

// lowerPlainCall lowers `f(args...)`. Inside a method, f is first looked up
// as a member of the owning class and, if found, called as an implicit
// `this->f(...)`; only otherwise is it looked up at global scope, the same
// member-first order C++ unqualified lookup follows inside a member
// function body.
func (b *funcBuilder) lowerPlainCall(call *ast.ExprCallData, e *ast.Expr) (Operand, typesys.TypeID) {
	nr, ok := b.tree.NameRefOf(call.Callee)
	if !ok || len(nr.Path) != 1 {
		b.reportUnsupported(e.Span, "only unqualified calls are supported")
		return Operand{}, typesys.NoTypeID
	}
	name := nr.Path[0]

	args, argTypes := b.lowerArgs(call.Args)

	if b.ownerClass.IsValid() {
		if methodID, fn, ok := b.findMethod(b.ownerClass, name); ok {
			return b.emitDispatch(methodID, fn, true, CopyOf(PlaceOf(b.thisLocal)), args, e)
		}
	}

	target, ok := b.resolveCallee(name, e.Span, argTypes)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	fn, ok := b.table.Function(target)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	return b.emitDispatch(target, fn, false, Operand{}, args, e)
}

// lowerMethodCall lowers `obj.m(args...)` / `obj->m(args...)`, dispatching
// virtually through the receiver's vtable when m is virtual and statically
// otherwise (§4.F/§4.G).
func (b *funcBuilder) lowerMethodCall(call *ast.ExprCallData, e *ast.Expr) (Operand, typesys.TypeID) {
	ma, ok := b.tree.MemberAccessOf(call.Callee)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	base, baseTy := b.lowerPlace(ma.Base)
	if !base.IsValid() {
		return Operand{}, typesys.NoTypeID
	}
	if ma.IsArrow {
		bt, ok := b.types.Lookup(baseTy)
		if !ok || bt.Kind != typesys.KindPointer {
			b.reportUnsupported(e.Span, "-> used on a non-pointer base")
			return Operand{}, typesys.NoTypeID
		}
		base.Proj = append(base.Proj, PlaceProj{Kind: ProjDeref})
		baseTy = bt.Elem
	}
	bt, ok := b.types.Lookup(baseTy)
	if !ok || bt.Kind != typesys.KindClass {
		b.reportUnsupported(e.Span, "method call on a non-class receiver")
		return Operand{}, typesys.NoTypeID
	}
	classID := decl.DeclID(bt.Decl)
	methodID, fn, ok := b.findMethod(classID, ma.Name)
	if !ok {
		b.reportUnresolvedTarget(e.Span, "member name does not name a method of this class")
		return Operand{}, typesys.NoTypeID
	}

	args, _ := b.lowerArgs(call.Args)
	receiverPtrTy := b.types.Intern(typesys.MakePointer(baseTy, false, false))
	receiver := b.newTemp(receiverPtrTy, e.Span)
	b.emit(AssignOf(PlaceOf(receiver), Rvalue{Kind: RvalueAddressOf, AddressOf: base}))
	return b.emitDispatch(methodID, fn, true, CopyOf(PlaceOf(receiver)), args, e)
}

func (b *funcBuilder) lowerArgs(exprs []ast.ExprID) ([]Operand, []typesys.TypeID) {
	args := make([]Operand, 0, len(exprs))
	types := make([]typesys.TypeID, 0, len(exprs))
	for _, a := range exprs {
		op, ty := b.lowerExpr(a)
		args = append(args, op)
		types = append(types, ty)
	}
	return args, types
}

func (b *funcBuilder) findMethod(classID decl.DeclID, name source.StringID) (decl.DeclID, *decl.FunctionData, bool) {
	cd, ok := b.table.Class(classID)
	if !ok {
		return decl.NoDeclID, nil, false
	}
	for _, m := range cd.Members {
		md := b.table.Decl(m)
		if md == nil || md.Kind != decl.KindFunction || md.Name != name {
			continue
		}
		fn, ok := b.table.Function(m)
		if !ok {
			continue
		}
		return m, fn, true
	}
	return decl.NoDeclID, nil, false
}

// emitDispatch lowers the actual call site once the target decl (and, for
// a method call, the receiver) are known: a VirtualCall terminator for a
// virtual method reached with a live receiver, a Call terminator otherwise.
// hasReceiver distinguishes a free-function call (no receiver to prepend or
// dispatch through) from a method call, since a zero Operand alone cannot
// tell the two apart.
func (b *funcBuilder) emitDispatch(target decl.DeclID, fn *decl.FunctionData, hasReceiver bool, receiver Operand, args []Operand, e *ast.Expr) (Operand, typesys.TypeID) {
	hasResult := false
	var dest Place
	if fn.ReturnType != typesys.NoTypeID {
		if rt, ok := b.types.Lookup(fn.ReturnType); ok && rt.Kind != typesys.KindVoid {
			hasResult = true
			dest = PlaceOf(b.newTemp(fn.ReturnType, e.Span))
		}
	}
	normal := b.newBlock()

	if hasReceiver && fn.IsVirtual && b.layout != nil {
		name := b.table.Decl(target).Name
		classLayout, err := b.layout.LayoutOf(fn.OwningClass)
		if err == nil && classLayout.HasVTable {
			if slot := classLayout.VTable.IndexOf(name); slot >= 0 {
				adjustor := int64(0)
				if slot < len(classLayout.VTable.Entries) {
					adjustor = classLayout.VTable.Entries[slot].Adjustor
				}
				b.setTerm(Terminator{Kind: TermVirtualCall, VirtualCall: VirtualCallTerm{
					Object: receiver, VTableSlot: slot, Adjustor: adjustor,
					Args: args, HasDest: hasResult, Dest: dest,
					Normal: normal, Unwind: NoBlockID,
				}})
				b.startBlock(normal)
				if hasResult {
					return CopyOf(dest), fn.ReturnType
				}
				return Operand{}, typesys.NoTypeID
			}
		}
	}

	if hasReceiver {
		args = append([]Operand{receiver}, args...)
	}
	b.setTerm(Terminator{Kind: TermCall, Call: CallTerm{
		Callee: target, Args: args, HasDest: hasResult, Dest: dest,
		Normal: normal, Unwind: NoBlockID,
	}})
	b.startBlock(normal)
	if hasResult {
		return CopyOf(dest), fn.ReturnType
	}
	return Operand{}, typesys.NoTypeID
}
