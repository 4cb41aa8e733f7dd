package mir

import (
	"cppmir/internal/decl"
	"cppmir/internal/typesys"
)

// typeOfOperand returns the static type an already-lowered operand
// carries, so downstream lowering (a cast target, an argument's
// conversion, a binary operator's result type) never has to re-derive it
// from the AST.
func (b *funcBuilder) typeOfOperand(op Operand) typesys.TypeID {
	switch op.Kind {
	case OperandConstant:
		return op.Const.Type
	default:
		return b.typeOfPlace(op.Place)
	}
}

// typeOfPlace walks a place's root local type through its projection
// chain. Only the projections lowering itself produces are handled; an
// unrecognised or out-of-range step returns NoTypeID rather than
// panicking, since a well-formed place always came from typeOfPlace's own
// producer (lowerPlace).
func (b *funcBuilder) typeOfPlace(p Place) typesys.TypeID {
	if !p.IsValid() || int(p.Root) >= len(b.f.Locals) {
		return typesys.NoTypeID
	}
	cur := b.f.Locals[p.Root].Type
	for _, proj := range p.Proj {
		t, ok := b.types.Lookup(cur)
		if !ok {
			return typesys.NoTypeID
		}
		switch proj.Kind {
		case ProjDeref:
			cur = t.Elem
		case ProjIndex:
			cur = t.Elem
		case ProjField:
			cur = b.fieldType(t, proj.FieldIdx)
		case ProjDowncastBase:
			cur = b.types.Intern(typesys.MakeClass(typesys.DeclRef(proj.DowncastClass)))
		case ProjVTableSlot:
			cur = typesys.NoTypeID
		case ProjVTablePtr:
			cur = b.types.Intern(typesys.MakePointer(b.types.Builtins().Void, false, false))
		}
	}
	return cur
}

// fieldType resolves the Nth field (RoleField variable, in Members order)
// of the class classTy names.
func (b *funcBuilder) fieldType(classTy typesys.Type, idx int) typesys.TypeID {
	if classTy.Kind != typesys.KindClass {
		return typesys.NoTypeID
	}
	cd, ok := b.table.Class(decl.DeclID(classTy.Decl))
	if !ok {
		return typesys.NoTypeID
	}
	n := -1
	for _, m := range cd.Members {
		md := b.table.Decl(m)
		if md == nil || md.Kind != decl.KindVariable {
			continue
		}
		vd, ok := b.table.Variable(m)
		if !ok || vd.Role != decl.RoleField {
			continue
		}
		n++
		if n == idx {
			return vd.Type
		}
	}
	return typesys.NoTypeID
}

// fieldIndexOf returns the RoleField-relative index of field within its
// owning class's Members list, used to build a ProjField whose FieldIdx
// downstream layout/codegen consumers can map back to a byte offset.
func (b *funcBuilder) fieldIndexOf(classID decl.DeclID, field decl.DeclID) (int, bool) {
	cd, ok := b.table.Class(classID)
	if !ok {
		return 0, false
	}
	n := -1
	for _, m := range cd.Members {
		md := b.table.Decl(m)
		if md == nil || md.Kind != decl.KindVariable {
			continue
		}
		vd, ok := b.table.Variable(m)
		if !ok || vd.Role != decl.RoleField {
			continue
		}
		n++
		if m == field {
			return n, true
		}
	}
	return 0, false
}
