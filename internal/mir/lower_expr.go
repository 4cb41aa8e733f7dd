package mir

import (
	"strconv"

	"cppmir/internal/ast"
	"cppmir/internal/typesys"
)

// lowerExpr lowers an expression used for its value. Expressions that are
// also valid lvalues (name references, member access, subscript,
// dereference) go through lowerPlace and come back wrapped as a Copy.
func (b *funcBuilder) lowerExpr(id ast.ExprID) (Operand, typesys.TypeID) {
	e := b.tree.Expr(id)
	if e == nil {
		return Operand{}, typesys.NoTypeID
	}
	switch e.Kind {
	case ast.ExprLiteral:
		return b.lowerLiteral(id, e)
	case ast.ExprNameRef, ast.ExprMemberAccess, ast.ExprSubscript:
		place, ty := b.lowerPlace(id)
		if !place.IsValid() {
			return Operand{}, typesys.NoTypeID
		}
		return CopyOf(place), ty
	case ast.ExprUnary:
		return b.lowerUnary(id, e)
	case ast.ExprBinary:
		return b.lowerBinary(id, e)
	case ast.ExprTernary:
		return b.lowerTernary(id, e)
	case ast.ExprCast:
		return b.lowerCast(id, e)
	case ast.ExprSizeof:
		return b.lowerSizeof(id, e)
	case ast.ExprThis:
		return b.lowerThis(e)
	case ast.ExprCall:
		return b.lowerCall(id, e)
	case ast.ExprNew, ast.ExprDelete:
		b.reportUnsupported(e.Span, "dynamic allocation is not modeled by this lowering")
		return Operand{}, typesys.NoTypeID
	default:
		b.reportUnsupported(e.Span, "expression kind is not supported by MIR lowering")
		return Operand{}, typesys.NoTypeID
	}
}

func (b *funcBuilder) lowerLiteral(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	lit, ok := b.tree.LiteralOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	bi := b.types.Builtins()
	switch lit.Kind {
	case ast.LiteralInt:
		n, _ := strconv.ParseInt(lit.Text, 0, 64)
		return ConstOf(Const{Kind: ConstInt, Type: bi.Int, Text: lit.Text, Int: n}), bi.Int
	case ast.LiteralFloat:
		f, _ := strconv.ParseFloat(lit.Text, 64)
		return ConstOf(Const{Kind: ConstFloat, Type: bi.Double, Text: lit.Text, Float: f}), bi.Double
	case ast.LiteralBool:
		return ConstOf(Const{Kind: ConstBool, Type: bi.Bool, Text: lit.Text, Bool: lit.Text == "true"}), bi.Bool
	case ast.LiteralChar:
		var r int64
		for _, c := range lit.Text {
			r = int64(c)
			break
		}
		return ConstOf(Const{Kind: ConstInt, Type: bi.Char, Text: lit.Text, Int: r}), bi.Char
	case ast.LiteralString:
		strTy := b.types.Intern(typesys.MakePointer(bi.Char, true, false))
		return ConstOf(Const{Kind: ConstString, Type: strTy, Text: lit.Text, Str: lit.Text}), strTy
	case ast.LiteralNullptr:
		ptrTy := b.types.Intern(typesys.MakePointer(bi.Void, false, false))
		return ConstOf(Const{Kind: ConstNullptr, Type: ptrTy}), ptrTy
	default:
		b.reportUnsupported(e.Span, "literal kind is not supported by MIR lowering")
		return Operand{}, typesys.NoTypeID
	}
}

func (b *funcBuilder) lowerThis(e *ast.Expr) (Operand, typesys.TypeID) {
	if b.thisLocal == NoLocalID {
		b.reportUnsupported(e.Span, "this used outside a member function")
		return Operand{}, typesys.NoTypeID
	}
	return CopyOf(PlaceOf(b.thisLocal)), b.f.Locals[b.thisLocal].Type
}

func (b *funcBuilder) lowerUnary(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	u, ok := b.tree.UnaryOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	switch u.Op {
	case ast.UnDeref:
		place, ty := b.lowerDerefPlace(u.Operand)
		if !place.IsValid() {
			return Operand{}, typesys.NoTypeID
		}
		return CopyOf(place), ty
	case ast.UnAddrOf:
		place, ty := b.lowerPlace(u.Operand)
		if !place.IsValid() {
			return Operand{}, typesys.NoTypeID
		}
		ptrTy := b.types.Intern(typesys.MakePointer(ty, false, false))
		tmp := b.newTemp(ptrTy, e.Span)
		b.emit(AssignOf(PlaceOf(tmp), Rvalue{Kind: RvalueAddressOf, AddressOf: place}))
		return CopyOf(PlaceOf(tmp)), ptrTy
	case ast.UnInc, ast.UnDec:
		return b.lowerIncDec(u, e)
	case ast.UnNeg, ast.UnNot, ast.UnBitNot:
		operand, ty := b.lowerExpr(u.Operand)
		resultTy := ty
		if u.Op == ast.UnNot {
			resultTy = b.types.Builtins().Bool
		}
		tmp := b.newTemp(resultTy, e.Span)
		b.emit(AssignOf(PlaceOf(tmp), Rvalue{Kind: RvalueUnaryOp, UnaryOp: UnaryOpRvalue{Op: u.Op, A: operand}}))
		return CopyOf(PlaceOf(tmp)), resultTy
	default:
		b.reportUnsupported(e.Span, "unary operator is not supported by MIR lowering")
		return Operand{}, typesys.NoTypeID
	}
}

// lowerIncDec lowers `++x`, `x++`, `--x`, `x--` as an explicit read of the
// old value, a computed new value, and a store back to the place — spelled
// out as distinct statements rather than a single fused instruction, since
// `*p++` on a pointer must read through the old address before the pointer
// itself advances (§4.G).
func (b *funcBuilder) lowerIncDec(u *ast.ExprUnaryData, e *ast.Expr) (Operand, typesys.TypeID) {
	place, ty := b.lowerPlace(u.Operand)
	if !place.IsValid() {
		return Operand{}, typesys.NoTypeID
	}
	old := b.newTemp(ty, e.Span)
	b.emit(AssignOf(PlaceOf(old), UseOf(CopyOf(place))))

	delta := b.stepDelta(ty)
	op := ast.BinAdd
	if u.Op == ast.UnDec {
		op = ast.BinSub
	}
	newVal := b.newTemp(ty, e.Span)
	b.emit(AssignOf(PlaceOf(newVal), Rvalue{Kind: RvalueBinOp, BinOp: BinOpRvalue{Op: op, A: CopyOf(PlaceOf(old)), B: delta}}))
	b.emit(AssignOf(place, UseOf(CopyOf(PlaceOf(newVal)))))

	if u.IsPostfix {
		return CopyOf(PlaceOf(old)), ty
	}
	return CopyOf(PlaceOf(newVal)), ty
}

// stepDelta returns the +1 operand for an increment/decrement of a value of
// type ty: a raw 1 for arithmetic types, sizeof(elem) for pointer
// arithmetic, so the generated add already reflects the scaled step
// (§4.G "pointer arithmetic is expressed as scaled integer addition").
func (b *funcBuilder) stepDelta(ty typesys.TypeID) Operand {
	bi := b.types.Builtins()
	t, ok := b.types.Lookup(ty)
	if ok && t.Kind == typesys.KindPointer {
		size := b.sizeOfType(t.Elem)
		return ConstOf(Const{Kind: ConstInt, Type: bi.Long, Int: int64(size)})
	}
	return ConstOf(Const{Kind: ConstInt, Type: bi.Int, Int: 1})
}

// sizeOfType returns the storage size of ty in bytes, used to scale pointer
// arithmetic. Class sizes come from the layout engine; everything else uses
// a fixed target width, since this system targets a single 64-bit ABI.
func (b *funcBuilder) sizeOfType(ty typesys.TypeID) uint64 {
	t, ok := b.types.Lookup(ty)
	if !ok {
		return 1
	}
	switch t.Kind {
	case typesys.KindBool, typesys.KindIntegral:
		if t.Width == typesys.WidthUnspecified {
			return 4
		}
		return uint64(t.Width) / 8
	case typesys.KindFloating:
		if t.Width == typesys.Width32 {
			return 4
		}
		return 8
	case typesys.KindPointer, typesys.KindReference:
		return 8
	case typesys.KindArray:
		if t.ArrayUnknownLen {
			return b.sizeOfType(t.Elem)
		}
		return t.ArrayLen * b.sizeOfType(t.Elem)
	case typesys.KindClass:
		if b.layout == nil {
			return 1
		}
		if size, _, ok := b.layout.SizeAlign(t.Decl); ok {
			return size
		}
		return 1
	default:
		return 1
	}
}

func (b *funcBuilder) lowerBinary(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	bin, ok := b.tree.BinaryOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	switch bin.Op {
	case ast.BinAssign:
		place, ty := b.lowerPlace(bin.LHS)
		if !place.IsValid() {
			return Operand{}, typesys.NoTypeID
		}
		val, _ := b.lowerExpr(bin.RHS)
		b.emit(AssignOf(place, UseOf(val)))
		return CopyOf(place), ty
	case ast.BinAddAssign, ast.BinSubAssign, ast.BinMulAssign, ast.BinDivAssign:
		return b.lowerCompoundAssign(bin, e)
	case ast.BinLogicalAnd, ast.BinLogicalOr:
		return b.lowerLogical(bin, e)
	case ast.BinComma:
		b.lowerExpr(bin.LHS)
		return b.lowerExpr(bin.RHS)
	default:
		lhs, lhsTy := b.lowerExpr(bin.LHS)
		rhs, _ := b.lowerExpr(bin.RHS)
		resultTy := lhsTy
		if isComparisonOp(bin.Op) {
			resultTy = b.types.Builtins().Bool
		}
		tmp := b.newTemp(resultTy, e.Span)
		b.emit(AssignOf(PlaceOf(tmp), Rvalue{Kind: RvalueBinOp, BinOp: BinOpRvalue{Op: bin.Op, A: lhs, B: rhs}}))
		return CopyOf(PlaceOf(tmp)), resultTy
	}
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return true
	default:
		return false
	}
}

var compoundToPlain = map[ast.BinaryOp]ast.BinaryOp{
	ast.BinAddAssign: ast.BinAdd,
	ast.BinSubAssign: ast.BinSub,
	ast.BinMulAssign: ast.BinMul,
	ast.BinDivAssign: ast.BinDiv,
}

func (b *funcBuilder) lowerCompoundAssign(bin *ast.ExprBinaryData, e *ast.Expr) (Operand, typesys.TypeID) {
	place, ty := b.lowerPlace(bin.LHS)
	if !place.IsValid() {
		return Operand{}, typesys.NoTypeID
	}
	old := CopyOf(place)
	rhs, _ := b.lowerExpr(bin.RHS)
	tmp := b.newTemp(ty, e.Span)
	b.emit(AssignOf(PlaceOf(tmp), Rvalue{Kind: RvalueBinOp, BinOp: BinOpRvalue{Op: compoundToPlain[bin.Op], A: old, B: rhs}}))
	b.emit(AssignOf(place, UseOf(CopyOf(PlaceOf(tmp)))))
	return CopyOf(place), ty
}

// lowerLogical lowers `&&`/`||` as the short-circuit diamond §4.G requires:
// the right operand is only evaluated in the block reached when the left
// operand didn't already decide the result.
func (b *funcBuilder) lowerLogical(bin *ast.ExprBinaryData, e *ast.Expr) (Operand, typesys.TypeID) {
	boolTy := b.types.Builtins().Bool
	result := b.newTemp(boolTy, e.Span)

	lhs, _ := b.lowerExpr(bin.LHS)
	rhsBlock := b.newBlock()
	shortBlock := b.newBlock()
	joinBlock := b.newBlock()

	shortValue := bin.Op == ast.BinLogicalOr
	if shortValue {
		b.setTerm(Terminator{Kind: TermIf, If: IfTerm{Cond: lhs, Then: shortBlock, Else: rhsBlock}})
	} else {
		b.setTerm(Terminator{Kind: TermIf, If: IfTerm{Cond: lhs, Then: rhsBlock, Else: shortBlock}})
	}

	b.startBlock(shortBlock)
	b.emit(AssignOf(PlaceOf(result), UseOf(ConstOf(Const{Kind: ConstBool, Type: boolTy, Bool: shortValue}))))
	b.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBlock}})

	b.startBlock(rhsBlock)
	rhs, _ := b.lowerExpr(bin.RHS)
	b.emit(AssignOf(PlaceOf(result), UseOf(rhs)))
	b.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBlock}})

	b.startBlock(joinBlock)
	return CopyOf(PlaceOf(result)), boolTy
}

// lowerTernary lowers `cond ? then : else` as an if/else diamond that
// writes into a shared temporary, mirroring lowerLogical's shape.
func (b *funcBuilder) lowerTernary(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	tern, ok := b.tree.TernaryOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	cond, _ := b.lowerExpr(tern.Cond)
	thenBlock := b.newBlock()
	elseBlock := b.newBlock()
	joinBlock := b.newBlock()
	b.setTerm(Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: thenBlock, Else: elseBlock}})

	b.startBlock(thenBlock)
	thenVal, ty := b.lowerExpr(tern.Then)
	result := b.newTemp(ty, e.Span)
	b.emit(AssignOf(PlaceOf(result), UseOf(thenVal)))
	b.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBlock}})

	b.startBlock(elseBlock)
	elseVal, _ := b.lowerExpr(tern.Else)
	b.emit(AssignOf(PlaceOf(result), UseOf(elseVal)))
	b.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBlock}})

	b.startBlock(joinBlock)
	return CopyOf(PlaceOf(result)), ty
}

func (b *funcBuilder) lowerCast(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	c, ok := b.tree.CastOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	operand, _ := b.lowerExpr(c.Operand)
	target, ok := b.resolveTypeRef(c.Target)
	if !ok {
		b.reportUnsupported(e.Span, "cast target type could not be resolved")
		return Operand{}, typesys.NoTypeID
	}
	tmp := b.newTemp(target, e.Span)
	b.emit(AssignOf(PlaceOf(tmp), Rvalue{Kind: RvalueCast, Cast: CastRvalue{Kind: c.Kind, Operand: operand, To: target}}))
	return CopyOf(PlaceOf(tmp)), target
}

func (b *funcBuilder) lowerSizeof(id ast.ExprID, e *ast.Expr) (Operand, typesys.TypeID) {
	s, ok := b.tree.SizeofExprOf(id)
	if !ok {
		return Operand{}, typesys.NoTypeID
	}
	var ty typesys.TypeID
	if s.TypeArg != ast.NoTypeRefID {
		ty, ok = b.resolveTypeRef(s.TypeArg)
		if !ok {
			b.reportUnsupported(e.Span, "sizeof operand type could not be resolved")
			return Operand{}, typesys.NoTypeID
		}
	} else {
		_, ty = b.lowerExpr(s.Operand)
	}
	size := b.sizeOfType(ty)
	bi := b.types.Builtins()
	return ConstOf(Const{Kind: ConstInt, Type: bi.Long, Int: int64(size)}), bi.Long
}
