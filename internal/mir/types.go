package mir

import (
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// LocalID indexes Function.Locals; 0 is always the return slot under the
// return-by-reference convention (§6.2), typed void for a void function.
type LocalID int32

// BlockID indexes Function.Blocks.
type BlockID int32

const (
	NoLocalID LocalID = -1
	NoBlockID BlockID = -1
)

// Local describes one entry of a function's local table: a parameter,
// the return slot, or a stack temporary/variable introduced by lowering.
type Local struct {
	Type typesys.TypeID
	Name source.StringID // NoStringID for a compiler-introduced temporary
	Span source.Span
}

// PlaceProjKind tags one step of a Place's projection chain.
type PlaceProjKind uint8

const (
	ProjField PlaceProjKind = iota
	ProjDeref
	ProjIndex
	ProjDowncastBase
	ProjVTableSlot
	// ProjVTablePtr names the vtable-pointer slot of the class the place
	// currently denotes, per layout.ClassLayout.VTablePtrOffset. It has no
	// extra fields of its own: the owning class is whatever KindClass type
	// the place carried going in, resolved against the layout engine at
	// the point a constructor prologue or virtual-call site needs it.
	ProjVTablePtr
)

// PlaceProj is one projection step. Only the fields relevant to Kind are
// meaningful.
type PlaceProj struct {
	Kind PlaceProjKind

	FieldIdx       int         // ProjField: member index within the owning class's layout
	IndexLocal     LocalID     // ProjIndex: the local holding the index operand
	DowncastClass  decl.DeclID // ProjDowncastBase: the base subobject's class
	DowncastOffset uint64      // ProjDowncastBase: its offset in the most-derived object
	VTableSlot     int         // ProjVTableSlot: slot index into the pointed-to vtable
}

// Place is an lvalue: a root local plus an ordered chain of projections.
type Place struct {
	Root LocalID
	Proj []PlaceProj
}

// IsValid reports whether p names a real local.
func (p Place) IsValid() bool { return p.Root != NoLocalID }

// PlaceOf builds a bare, unprojected place naming local.
func PlaceOf(local LocalID) Place { return Place{Root: local} }
