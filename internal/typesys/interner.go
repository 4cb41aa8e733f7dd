package typesys

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Builtins caches the TypeIDs for the primitive types every translation
// unit needs, so callers do not re-intern them at every use site.
type Builtins struct {
	Void   TypeID
	Bool   TypeID
	Char   TypeID
	Int    TypeID
	Long   TypeID
	Float  TypeID
	Double TypeID
}

// Interner hash-conses Type descriptors into stable TypeIDs. Two types are
// semantically equal iff their TypeIDs are identical: canonicalisation
// happens once, at Intern time, not at every comparison site.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	sigs     []fnSignature
	sigIndex map[string]uint32
	builtins Builtins

	layoutProvider LayoutProvider
}

// LayoutProvider defers size/alignment queries for class types to the
// class layout engine (component F), which typesys cannot import directly
// without creating a cycle (layout needs to look up field/base types).
type LayoutProvider interface {
	SizeAlign(decl DeclRef) (size, align uint64, ok bool)
}

// NewInterner constructs an interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		sigIndex: make(map[string]uint32, 16),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // reserve 0 for NoTypeID
	in.builtins.Void = in.Intern(MakeVoid())
	in.builtins.Bool = in.Intern(MakeBool())
	in.builtins.Char = in.Intern(MakeIntegral(true, Width8))
	in.builtins.Int = in.Intern(MakeIntegral(true, Width32))
	in.builtins.Long = in.Intern(MakeIntegral(true, Width64))
	in.builtins.Float = in.Intern(MakeFloating(Width32))
	in.builtins.Double = in.Intern(MakeFloating(Width64))
	return in
}

// SetLayoutProvider wires the class layout engine in. Must be called at
// most once per translation unit, before LayoutOf is used on class types.
func (in *Interner) SetLayoutProvider(p LayoutProvider) { in.layoutProvider = p }

// Builtins returns the cached primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern hash-conses t, returning its stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	value, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("typesys: type arena overflow: %w", err))
	}
	id := TypeID(value)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// InternFunction interns a function type, deduplicating parameter lists
// through a side table since a slice cannot appear inside typeKey.
func (in *Interner) InternFunction(params []TypeID, ret TypeID, variadic bool) TypeID {
	payload := in.internSignature(params, ret, variadic)
	return in.Intern(Type{Kind: KindFunction, Payload: payload})
}

func (in *Interner) internSignature(params []TypeID, ret TypeID, variadic bool) uint32 {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(ret), 10))
	b.WriteByte(':')
	for _, p := range params {
		b.WriteString(strconv.FormatUint(uint64(p), 10))
		b.WriteByte(',')
	}
	if variadic {
		b.WriteString("...")
	}
	key := b.String()
	if idx, ok := in.sigIndex[key]; ok {
		return idx
	}
	value, err := safecast.Conv[uint32](len(in.sigs))
	if err != nil {
		panic(fmt.Errorf("typesys: signature arena overflow: %w", err))
	}
	cp := append([]TypeID(nil), params...)
	in.sigs = append(in.sigs, fnSignature{Params: cp, Return: ret, Variadic: variadic})
	in.sigIndex[key] = value
	return value
}

// Lookup returns the descriptor for id, or (Type{}, false) if id is out
// of range.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("typesys: invalid TypeID")
	}
	return t
}

// Signature returns the parameter/return/variadic data for a KindFunction
// type's Payload.
func (in *Interner) Signature(payload uint32) (params []TypeID, ret TypeID, variadic bool, ok bool) {
	if int(payload) >= len(in.sigs) {
		return nil, NoTypeID, false, false
	}
	sig := in.sigs[payload]
	return sig.Params, sig.Return, sig.Variadic, true
}

// LayoutOf returns the size and alignment of id, deferring to the wired
// LayoutProvider for class types. Non-class types compute their layout
// structurally.
func (in *Interner) LayoutOf(id TypeID) (size, align uint64, ok bool) {
	t, ok := in.Lookup(id)
	if !ok {
		return 0, 0, false
	}
	switch t.Kind {
	case KindVoid:
		return 0, 1, true
	case KindBool:
		return 1, 1, true
	case KindIntegral, KindFloating:
		w := uint64(t.Width)
		if w == 0 {
			w = 32
		}
		return w / 8, w / 8, true
	case KindPointer, KindReference:
		return 8, 8, true
	case KindEnum:
		return in.LayoutOf(t.Elem)
	case KindArray:
		if t.ArrayUnknownLen {
			return 0, 0, false
		}
		elemSize, elemAlign, ok := in.LayoutOf(t.Elem)
		if !ok {
			return 0, 0, false
		}
		return elemSize * t.ArrayLen, elemAlign, true
	case KindClass:
		if in.layoutProvider == nil {
			return 0, 0, false
		}
		return in.layoutProvider.SizeAlign(t.Decl)
	default:
		return 0, 0, false
	}
}
