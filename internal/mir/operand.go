package mir

import (
	"cppmir/internal/decl"
	"cppmir/internal/typesys"
)

// ConstKind tags what a Const literally spells.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstString
	ConstNullptr
	ConstSymbol // the address of a function or global, by decl
	ConstVTable // the address of a class's vtable blob; Symbol holds the owning class's DeclID
)

// Const is a MIR constant operand payload. Text preserves the original
// literal spelling for diagnostics; Int/Float/Bool/Str hold the parsed
// value used by constant folding and codegen.
type Const struct {
	Kind ConstKind
	Type typesys.TypeID

	Text   string
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Symbol decl.DeclID
}

// OperandKind distinguishes how a use consumes a Place.
type OperandKind uint8

const (
	OperandCopy OperandKind = iota
	OperandMove
	OperandConstant
)

// Operand is MIROperand: Copy(place) | Move(place) | Constant(literal).
type Operand struct {
	Kind  OperandKind
	Place Place
	Const Const
}

func CopyOf(p Place) Operand  { return Operand{Kind: OperandCopy, Place: p} }
func MoveOf(p Place) Operand  { return Operand{Kind: OperandMove, Place: p} }
func ConstOf(c Const) Operand { return Operand{Kind: OperandConstant, Const: c} }
