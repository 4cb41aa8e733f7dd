package ast

import "cppmir/internal/source"

// TypeRefKind tags how a TypeRef spells a type before canonicalisation.
type TypeRefKind uint8

const (
	TypeRefNamed TypeRefKind = iota
	TypeRefPointer
	TypeRefReference
	TypeRefArray
	TypeRefFunction
)

// TypeRef is a type as written in source. The type system (component C)
// resolves each one, in the scope it was written, to a canonical Type.
type TypeRef struct {
	Kind TypeRefKind
	Span source.Span

	// TypeRefNamed: a possibly-qualified name with optional template
	// arguments, e.g. "std::vector<int>".
	Path     []source.StringID
	TypeArgs []TypeRefID
	IsConst  bool
	IsVolatile bool

	// TypeRefPointer, TypeRefReference: the pointee/referent.
	Inner    TypeRefID
	IsRvalue bool // TypeRefReference only: && vs &

	// TypeRefArray: element type and optional bound (NoExprID means an
	// incomplete array type, T[]).
	Bound ExprID

	// TypeRefFunction: parameter types, return type, and variadic flag
	// (as used by function-pointer/function-type spellings).
	Params   []TypeRefID
	Return   TypeRefID
	Variadic bool
}

// NewNamedType registers a named type reference.
func (t *Tree) NewNamedType(path []source.StringID, typeArgs []TypeRefID, cnst, vol bool, span source.Span) TypeRefID {
	return TypeRefID(t.TypeRefs.Allocate(TypeRef{
		Kind: TypeRefNamed, Span: span,
		Path: path, TypeArgs: typeArgs, IsConst: cnst, IsVolatile: vol,
	}))
}

// NewPointerType registers a pointer-to-inner type reference.
func (t *Tree) NewPointerType(inner TypeRefID, cnst, vol bool, span source.Span) TypeRefID {
	return TypeRefID(t.TypeRefs.Allocate(TypeRef{
		Kind: TypeRefPointer, Span: span,
		Inner: inner, IsConst: cnst, IsVolatile: vol,
	}))
}

// NewReferenceType registers an lvalue/rvalue reference-to-inner type
// reference.
func (t *Tree) NewReferenceType(inner TypeRefID, rvalue bool, span source.Span) TypeRefID {
	return TypeRefID(t.TypeRefs.Allocate(TypeRef{
		Kind: TypeRefReference, Span: span,
		Inner: inner, IsRvalue: rvalue,
	}))
}

// NewArrayType registers an array-of-inner type reference. bound is
// NoExprID for an incomplete array type.
func (t *Tree) NewArrayType(inner TypeRefID, bound ExprID, span source.Span) TypeRefID {
	return TypeRefID(t.TypeRefs.Allocate(TypeRef{
		Kind: TypeRefArray, Span: span,
		Inner: inner, Bound: bound,
	}))
}

// NewFunctionType registers a function-type reference.
func (t *Tree) NewFunctionType(params []TypeRefID, ret TypeRefID, variadic bool, span source.Span) TypeRefID {
	return TypeRefID(t.TypeRefs.Allocate(TypeRef{
		Kind: TypeRefFunction, Span: span,
		Params: params, Return: ret, Variadic: variadic,
	}))
}

// TypeRef returns the entry for id.
func (t *Tree) TypeRef(id TypeRefID) *TypeRef {
	return t.TypeRefs.Get(uint32(id))
}
