package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/typesys"
)

// RvalueKind tags a MIRRvalue variant.
type RvalueKind uint8

const (
	RvalueUse RvalueKind = iota
	RvalueBinOp
	RvalueUnaryOp
	RvalueRef
	RvalueCast
	RvalueAddressOf
	RvalueAggregate
)

// RefKind distinguishes a shared reference/pointer from a mutable one at
// the point a Ref rvalue is formed; it does not affect codegen, only
// downstream verification of the "must not be rebound" reference marker
// (§4.G).
type RefKind uint8

const (
	RefShared RefKind = iota
	RefMutable
)

// Rvalue is the tagged header for MIRRvalue: Use | BinOp | UnaryOp | Ref |
// Cast | AddressOf | Aggregate.
type Rvalue struct {
	Kind RvalueKind

	Use       Operand
	BinOp     BinOpRvalue
	UnaryOp   UnaryOpRvalue
	Ref       RefRvalue
	Cast      CastRvalue
	AddressOf Place
	Aggregate AggregateRvalue
}

type BinOpRvalue struct {
	Op   ast.BinaryOp
	A, B Operand
}

type UnaryOpRvalue struct {
	Op ast.UnaryOp
	A  Operand
}

type RefRvalue struct {
	Place Place
	Kind  RefKind
}

type CastRvalue struct {
	Kind    ast.CastKind
	Operand Operand
	To      typesys.TypeID
}

type AggregateRvalue struct {
	Type     typesys.TypeID
	Operands []Operand
}

func UseOf(op Operand) Rvalue { return Rvalue{Kind: RvalueUse, Use: op} }
