package ast

import "cppmir/internal/source"

// ExprKind tags an expression node.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprNameRef
	ExprMemberAccess
	ExprCall
	ExprBinary
	ExprUnary
	ExprTernary
	ExprCast
	ExprSubscript
	ExprNew
	ExprDelete
	ExprSizeof
	ExprThis
)

// Expr is the tagged header shared by every expression kind.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LiteralKind tags what a literal expression spells.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
	LiteralChar
	LiteralString
	LiteralNullptr
)

// ExprLiteralData holds a literal's kind and its unparsed text, deferring
// value interpretation (base, suffix, escapes) to the type checker.
type ExprLiteralData struct {
	Kind LiteralKind
	Text string
}

// ExprNameRefData holds a (possibly qualified, possibly template-id) name
// reference such as `foo`, `std::max`, or `Vector<int>::size`.
type ExprNameRefData struct {
	Path         []source.StringID
	TemplateArgs []TypeRefID // nil unless the reference is an explicit template-id
}

// ExprMemberAccessData holds `base.name` or `base->name`.
type ExprMemberAccessData struct {
	Base    ExprID
	Name    source.StringID
	IsArrow bool
}

// ExprCallData holds a function call.
type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

// BinaryOp enumerates binary operators, including compound assignment.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinLogicalAnd
	BinLogicalOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinComma
)

// ExprBinaryData holds a binary (including assignment) expression.
type ExprBinaryData struct {
	Op       BinaryOp
	LHS, RHS ExprID
}

// UnaryOp enumerates unary and increment/decrement operators.
type UnaryOp uint8

const (
	UnNeg UnaryOp = iota
	UnNot
	UnBitNot
	UnAddrOf
	UnDeref
	UnInc
	UnDec
)

// ExprUnaryData holds a unary or increment/decrement expression.
// IsPostfix distinguishes `x++` from `++x` for UnInc/UnDec.
type ExprUnaryData struct {
	Op        UnaryOp
	Operand   ExprID
	IsPostfix bool
}

// ExprTernaryData holds `cond ? then : else`.
type ExprTernaryData struct {
	Cond, Then, Else ExprID
}

// CastKind enumerates the C++ cast forms plus implicit C-style casts the
// producer may still surface explicitly.
type CastKind uint8

const (
	CastStatic CastKind = iota
	CastDynamic
	CastConst
	CastReinterpret
	CastCStyle
	CastFunctional
)

// ExprCastData holds a cast expression.
type ExprCastData struct {
	Kind    CastKind
	Target  TypeRefID
	Operand ExprID
}

// ExprSubscriptData holds `base[index]`.
type ExprSubscriptData struct {
	Base, Index ExprID
}

// ExprNewData holds a new-expression. ArraySize is NoExprID for
// non-array new.
type ExprNewData struct {
	Type      TypeRefID
	Args      []ExprID
	ArraySize ExprID
}

// ExprDeleteData holds a delete-expression.
type ExprDeleteData struct {
	Operand ExprID
	IsArray bool
}

// ExprSizeofData holds sizeof(expr) or sizeof(Type). Exactly one of
// Operand/TypeArg is set.
type ExprSizeofData struct {
	Operand ExprID
	TypeArg TypeRefID
}

func (t *Tree) newExpr(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(t.Exprs.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Expr returns the tagged header for id.
func (t *Tree) Expr(id ExprID) *Expr {
	return t.Exprs.Get(uint32(id))
}

func (t *Tree) NewLiteral(kind LiteralKind, text string, span source.Span) ExprID {
	p := t.ExprLiterals.Allocate(ExprLiteralData{Kind: kind, Text: text})
	return t.newExpr(ExprLiteral, span, PayloadID(p))
}

func (t *Tree) NewNameRef(path []source.StringID, templateArgs []TypeRefID, span source.Span) ExprID {
	p := t.ExprNameRefs.Allocate(ExprNameRefData{Path: path, TemplateArgs: templateArgs})
	return t.newExpr(ExprNameRef, span, PayloadID(p))
}

func (t *Tree) NewMemberAccess(base ExprID, name source.StringID, arrow bool, span source.Span) ExprID {
	p := t.ExprMemberAccess.Allocate(ExprMemberAccessData{Base: base, Name: name, IsArrow: arrow})
	return t.newExpr(ExprMemberAccess, span, PayloadID(p))
}

func (t *Tree) NewCall(callee ExprID, args []ExprID, span source.Span) ExprID {
	p := t.ExprCalls.Allocate(ExprCallData{Callee: callee, Args: args})
	return t.newExpr(ExprCall, span, PayloadID(p))
}

func (t *Tree) NewBinary(op BinaryOp, lhs, rhs ExprID, span source.Span) ExprID {
	p := t.ExprBinaries.Allocate(ExprBinaryData{Op: op, LHS: lhs, RHS: rhs})
	return t.newExpr(ExprBinary, span, PayloadID(p))
}

func (t *Tree) NewUnary(op UnaryOp, operand ExprID, postfix bool, span source.Span) ExprID {
	p := t.ExprUnaries.Allocate(ExprUnaryData{Op: op, Operand: operand, IsPostfix: postfix})
	return t.newExpr(ExprUnary, span, PayloadID(p))
}

func (t *Tree) NewTernary(cond, then, els ExprID, span source.Span) ExprID {
	p := t.ExprTernaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els})
	return t.newExpr(ExprTernary, span, PayloadID(p))
}

func (t *Tree) NewCast(kind CastKind, target TypeRefID, operand ExprID, span source.Span) ExprID {
	p := t.ExprCasts.Allocate(ExprCastData{Kind: kind, Target: target, Operand: operand})
	return t.newExpr(ExprCast, span, PayloadID(p))
}

func (t *Tree) NewSubscript(base, index ExprID, span source.Span) ExprID {
	p := t.ExprSubscripts.Allocate(ExprSubscriptData{Base: base, Index: index})
	return t.newExpr(ExprSubscript, span, PayloadID(p))
}

func (t *Tree) NewNewExpr(typ TypeRefID, args []ExprID, arraySize ExprID, span source.Span) ExprID {
	p := t.ExprNews.Allocate(ExprNewData{Type: typ, Args: args, ArraySize: arraySize})
	return t.newExpr(ExprNew, span, PayloadID(p))
}

func (t *Tree) NewDeleteExpr(operand ExprID, isArray bool, span source.Span) ExprID {
	p := t.ExprDeletes.Allocate(ExprDeleteData{Operand: operand, IsArray: isArray})
	return t.newExpr(ExprDelete, span, PayloadID(p))
}

func (t *Tree) NewSizeofExpr(operand ExprID, typeArg TypeRefID, span source.Span) ExprID {
	p := t.ExprSizeofs.Allocate(ExprSizeofData{Operand: operand, TypeArg: typeArg})
	return t.newExpr(ExprSizeof, span, PayloadID(p))
}

func (t *Tree) NewThis(span source.Span) ExprID {
	return t.newExpr(ExprThis, span, NoPayloadID)
}

func (t *Tree) LiteralOf(id ExprID) (*ExprLiteralData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprLiteral {
		return nil, false
	}
	return t.ExprLiterals.Get(uint32(e.Payload)), true
}

func (t *Tree) NameRefOf(id ExprID) (*ExprNameRefData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprNameRef {
		return nil, false
	}
	return t.ExprNameRefs.Get(uint32(e.Payload)), true
}

func (t *Tree) MemberAccessOf(id ExprID) (*ExprMemberAccessData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprMemberAccess {
		return nil, false
	}
	return t.ExprMemberAccess.Get(uint32(e.Payload)), true
}

func (t *Tree) CallOf(id ExprID) (*ExprCallData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprCall {
		return nil, false
	}
	return t.ExprCalls.Get(uint32(e.Payload)), true
}

func (t *Tree) BinaryOf(id ExprID) (*ExprBinaryData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprBinary {
		return nil, false
	}
	return t.ExprBinaries.Get(uint32(e.Payload)), true
}

func (t *Tree) UnaryOf(id ExprID) (*ExprUnaryData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprUnary {
		return nil, false
	}
	return t.ExprUnaries.Get(uint32(e.Payload)), true
}

func (t *Tree) TernaryOf(id ExprID) (*ExprTernaryData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprTernary {
		return nil, false
	}
	return t.ExprTernaries.Get(uint32(e.Payload)), true
}

func (t *Tree) CastOf(id ExprID) (*ExprCastData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprCast {
		return nil, false
	}
	return t.ExprCasts.Get(uint32(e.Payload)), true
}

func (t *Tree) SubscriptOf(id ExprID) (*ExprSubscriptData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprSubscript {
		return nil, false
	}
	return t.ExprSubscripts.Get(uint32(e.Payload)), true
}

func (t *Tree) NewExprOf(id ExprID) (*ExprNewData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprNew {
		return nil, false
	}
	return t.ExprNews.Get(uint32(e.Payload)), true
}

func (t *Tree) DeleteExprOf(id ExprID) (*ExprDeleteData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprDelete {
		return nil, false
	}
	return t.ExprDeletes.Get(uint32(e.Payload)), true
}

func (t *Tree) SizeofExprOf(id ExprID) (*ExprSizeofData, bool) {
	e := t.Expr(id)
	if e == nil || e.Kind != ExprSizeof {
		return nil, false
	}
	return t.ExprSizeofs.Get(uint32(e.Payload)), true
}
