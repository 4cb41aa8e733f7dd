package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// lowerPlace lowers an expression used as an lvalue: the target of an
// assignment, the operand of `&`, or the base of a further projection.
// It reports LoweringUnsupportedConstruct and returns an invalid place
// for any expression shape that is not an lvalue in this subset.
func (b *funcBuilder) lowerPlace(id ast.ExprID) (Place, typesys.TypeID) {
	e := b.tree.Expr(id)
	if e == nil {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	switch e.Kind {
	case ast.ExprNameRef:
		return b.lowerNameRefPlace(id)
	case ast.ExprMemberAccess:
		return b.lowerMemberPlace(id)
	case ast.ExprSubscript:
		return b.lowerSubscriptPlace(id)
	case ast.ExprUnary:
		u, _ := b.tree.UnaryOf(id)
		if u != nil && u.Op == ast.UnDeref {
			return b.lowerDerefPlace(u.Operand)
		}
		b.reportUnsupported(e.Span, "unary operator does not produce an lvalue")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	default:
		b.reportUnsupported(e.Span, "expression does not produce an lvalue")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
}

func (b *funcBuilder) lowerNameRefPlace(id ast.ExprID) (Place, typesys.TypeID) {
	nr, ok := b.tree.NameRefOf(id)
	if !ok || len(nr.Path) != 1 {
		b.reportUnsupported(b.tree.Expr(id).Span, "only unqualified local names are supported as lvalues")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	local, ok := b.lookupLocal(nr.Path[0])
	if !ok {
		b.reportUnresolvedTarget(b.tree.Expr(id).Span, "name does not refer to a declared local, parameter, or field")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	return PlaceOf(local), b.f.Locals[local].Type
}

func (b *funcBuilder) lowerMemberPlace(id ast.ExprID) (Place, typesys.TypeID) {
	span := b.tree.Expr(id).Span
	ma, ok := b.tree.MemberAccessOf(id)
	if !ok {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	base, baseTy := b.lowerPlace(ma.Base)
	if !base.IsValid() {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	if ma.IsArrow {
		bt, ok := b.types.Lookup(baseTy)
		if !ok || bt.Kind != typesys.KindPointer {
			b.reportUnsupported(span, "-> used on a non-pointer base")
			return Place{Root: NoLocalID}, typesys.NoTypeID
		}
		base.Proj = append(base.Proj, PlaceProj{Kind: ProjDeref})
		baseTy = bt.Elem
	}
	bt, ok := b.types.Lookup(baseTy)
	if !ok || bt.Kind != typesys.KindClass {
		b.reportUnsupported(span, "member access on a non-class type")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	classID := decl.DeclID(bt.Decl)
	fieldID, fieldTy := b.findField(classID, ma.Name)
	if !fieldID.IsValid() {
		b.reportUnresolvedTarget(span, "member name does not name a field of this class")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	idx, ok := b.fieldIndexOf(classID, fieldID)
	if !ok {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	base.Proj = append(base.Proj, PlaceProj{Kind: ProjField, FieldIdx: idx})
	return base, fieldTy
}

func (b *funcBuilder) findField(classID decl.DeclID, name source.StringID) (decl.DeclID, typesys.TypeID) {
	cd, ok := b.table.Class(classID)
	if !ok {
		return decl.NoDeclID, typesys.NoTypeID
	}
	for _, m := range cd.Members {
		md := b.table.Decl(m)
		if md == nil || md.Kind != decl.KindVariable || md.Name != name {
			continue
		}
		vd, ok := b.table.Variable(m)
		if !ok || vd.Role != decl.RoleField {
			continue
		}
		return m, vd.Type
	}
	return decl.NoDeclID, typesys.NoTypeID
}

func (b *funcBuilder) lowerSubscriptPlace(id ast.ExprID) (Place, typesys.TypeID) {
	span := b.tree.Expr(id).Span
	sub, ok := b.tree.SubscriptOf(id)
	if !ok {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	base, baseTy := b.lowerPlace(sub.Base)
	bt, ok := b.types.Lookup(baseTy)
	elemTy := typesys.NoTypeID
	if ok && (bt.Kind == typesys.KindArray || bt.Kind == typesys.KindPointer) {
		elemTy = bt.Elem
	} else {
		b.reportUnsupported(span, "subscript used on a non-array, non-pointer base")
	}
	if bt.Kind == typesys.KindPointer {
		base.Proj = append(base.Proj, PlaceProj{Kind: ProjDeref})
	}
	idxOp, _ := b.lowerExpr(sub.Index)
	idxLocal := b.materialize(idxOp, span)
	base.Proj = append(base.Proj, PlaceProj{Kind: ProjIndex, IndexLocal: idxLocal})
	return base, elemTy
}

func (b *funcBuilder) lowerDerefPlace(operand ast.ExprID) (Place, typesys.TypeID) {
	op, ty := b.lowerExpr(operand)
	place := b.operandAsPlace(op, b.tree.Expr(operand).Span)
	if !place.IsValid() {
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	t, ok := b.types.Lookup(ty)
	if !ok || (t.Kind != typesys.KindPointer && t.Kind != typesys.KindReference) {
		b.reportUnsupported(b.tree.Expr(operand).Span, "* applied to a non-pointer, non-reference operand")
		return Place{Root: NoLocalID}, typesys.NoTypeID
	}
	place.Proj = append(place.Proj, PlaceProj{Kind: ProjDeref})
	return place, t.Elem
}

// operandAsPlace views an rvalue as a place when it already denotes one
// (a Copy/Move of a local), materialising a fresh temporary otherwise so
// callers that need a Place always get one.
func (b *funcBuilder) operandAsPlace(op Operand, span source.Span) Place {
	if op.Kind != OperandConstant {
		return op.Place
	}
	local := b.newTemp(op.Const.Type, span)
	b.emit(AssignOf(PlaceOf(local), UseOf(op)))
	return PlaceOf(local)
}

// materialize copies op into a fresh temporary and returns that local,
// used where a place needs a LocalID rather than an arbitrary operand
// (array-index projections).
func (b *funcBuilder) materialize(op Operand, span source.Span) LocalID {
	ty := b.typeOfOperand(op)
	local := b.newTemp(ty, span)
	b.emit(AssignOf(PlaceOf(local), UseOf(op)))
	return local
}
