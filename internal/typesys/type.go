package typesys

import "cppmir/internal/source"

// TypeID uniquely identifies a canonical type inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// DeclRef is an opaque reference to the decl a class or enum type
// canonicalises to. It is deliberately just a uint32, not a decl.DeclID:
// typesys sits below internal/decl in the dependency graph, so it cannot
// import decl's type without creating an import cycle. Callers holding
// both a decl.DeclID and a typesys.DeclRef convert between them with a
// plain uint32 cast.
type DeclRef uint32

// NoDeclRef marks the absence of an owning decl.
const NoDeclRef DeclRef = 0

// Kind enumerates the type variants the mangler, layout engine, and
// overload resolver all switch over.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindIntegral
	KindFloating
	KindPointer
	KindReference
	KindArray
	KindFunction
	KindClass
	KindEnum
	KindTemplateTypeParameter
	KindDependentName
	KindUnresolvedOverloadSet
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindIntegral:
		return "integral"
	case KindFloating:
		return "floating"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindTemplateTypeParameter:
		return "template-type-parameter"
	case KindDependentName:
		return "dependent-name"
	case KindUnresolvedOverloadSet:
		return "unresolved-overload-set"
	default:
		return "invalid"
	}
}

// Width is the bit width of an integral or floating type.
type Width uint8

const (
	WidthUnspecified Width = 0
	Width8           Width = 8
	Width16          Width = 16
	Width32          Width = 32
	Width64          Width = 64
)

// ArrayUnknownBound marks an array declared with no compile-time length
// (an incomplete array type, e.g. a function parameter of type T[]).
const ArrayUnknownBound = ^uint64(0)

// Type is a compact structural descriptor. Only the fields relevant to
// Kind are meaningful; the rest are zero. Function parameter lists are
// interned separately (see fnSignature) because a slice cannot appear in
// a comparable struct key.
type Type struct {
	Kind Kind

	Elem TypeID // pointee / referent / array element / enum underlying

	// Qualifiers, attached at the pointer/reference boundary and at top
	// level as the canonical form requires.
	Const    bool
	Volatile bool

	// Integral / floating.
	Signed bool
	Width  Width

	// Reference.
	RValue bool

	// Array.
	ArrayLen        uint64
	ArrayUnknownLen bool

	// Function.
	Payload uint32 // index into Interner.signatures

	// Class / enum.
	Decl DeclRef

	// Template type parameter / dependent name.
	ParamIndex int
	ParamName  source.StringID
}

type fnSignature struct {
	Params   []TypeID
	Return   TypeID
	Variadic bool
}

// typeKey is Type stripped to the fields that participate in structural
// equality, used as the interning map key. It must remain fully
// comparable (no slices), which is why function parameter lists are
// interned indirectly through Payload.
type typeKey Type

// MakeVoid, MakeBool are the nullary primitives; the others take the
// qualifiers/width/element the kind requires. These build unqualified,
// uncanonicalised descriptors for Interner.Intern to hash-cons.
func MakeVoid() Type { return Type{Kind: KindVoid} }
func MakeBool() Type { return Type{Kind: KindBool} }

func MakeIntegral(signed bool, width Width) Type {
	return Type{Kind: KindIntegral, Signed: signed, Width: width}
}

func MakeFloating(width Width) Type {
	return Type{Kind: KindFloating, Width: width}
}

func MakePointer(elem TypeID, constElem, volatileElem bool) Type {
	return Type{Kind: KindPointer, Elem: elem, Const: constElem, Volatile: volatileElem}
}

func MakeReference(elem TypeID, rvalue bool) Type {
	return Type{Kind: KindReference, Elem: elem, RValue: rvalue}
}

func MakeArray(elem TypeID, length uint64) Type {
	return Type{Kind: KindArray, Elem: elem, ArrayLen: length}
}

func MakeUnknownBoundArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem, ArrayUnknownLen: true}
}

func MakeClass(decl DeclRef) Type { return Type{Kind: KindClass, Decl: decl} }

func MakeEnum(decl DeclRef, underlying TypeID) Type {
	return Type{Kind: KindEnum, Decl: decl, Elem: underlying}
}

func MakeTemplateTypeParameter(index int, name source.StringID) Type {
	return Type{Kind: KindTemplateTypeParameter, ParamIndex: index, ParamName: name}
}

func MakeDependentName(name source.StringID) Type {
	return Type{Kind: KindDependentName, ParamName: name}
}

func MakeUnresolvedOverloadSet() Type { return Type{Kind: KindUnresolvedOverloadSet} }

// WithCV returns t with top-level const/volatile qualifiers set. Applying
// it to a pointer or reference qualifies the pointer/reference itself, not
// its pointee — callers wanting a const pointee qualify Elem before
// interning it.
func (t Type) WithCV(isConst, isVolatile bool) Type {
	t.Const = isConst
	t.Volatile = isVolatile
	return t
}
