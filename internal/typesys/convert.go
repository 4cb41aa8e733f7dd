package typesys

// Rank totally orders implicit conversion sequences, best first, so
// overload resolution can compare two candidates' per-argument sequences
// with a plain integer comparison.
type Rank uint8

const (
	RankIdentity Rank = iota
	RankLValueToRValue
	RankQualification
	RankPromotion
	RankConversion
	RankUserDefined
	RankEllipsis
	RankNone // not convertible
)

// Sequence describes one implicit conversion, ranked for comparison
// against another candidate's sequence for the same argument position.
type Sequence struct {
	Rank Rank
	// Via is set for RankUserDefined, naming the intermediate type a
	// user-defined conversion produces before further standard
	// conversions apply. Left NoTypeID otherwise.
	Via TypeID
}

func isArithmetic(k Kind) bool { return k == KindIntegral || k == KindFloating }

// integralConversionRank returns RankPromotion when widening a smaller
// integral to int or larger without changing signedness class in a lossy
// way, RankConversion otherwise (narrowing, or a change between signed and
// unsigned of comparable width).
func integralConversionRank(from, to Type) Rank {
	if to.Width > from.Width || (to.Width == from.Width && to.Signed == from.Signed) {
		if to.Width >= Width32 {
			return RankPromotion
		}
	}
	return RankConversion
}

// IsConvertible reports the best Sequence turning a value of type from into
// type to, or (Sequence{Rank: RankNone}, false) if no implicit conversion
// exists. It implements the standard-conversion tier of the C++ conversion
// hierarchy only. User-defined conversions (converting constructors,
// conversion operators) are not considered, here or in internal/overload,
// whose viability check calls IsConvertible alone.
func (in *Interner) IsConvertible(from, to TypeID) (Sequence, bool) {
	if from == to {
		return Sequence{Rank: RankIdentity}, true
	}
	ft, ok1 := in.Lookup(from)
	tt, ok2 := in.Lookup(to)
	if !ok1 || !ok2 {
		return Sequence{Rank: RankNone}, false
	}

	// Reference binding: T -> T& (or T const&) is a reference-binding
	// identity/qualification adjustment, not a value conversion.
	if tt.Kind == KindReference {
		inner, ok := in.IsConvertible(from, tt.Elem)
		if !ok {
			// binding a const lvalue reference to a temporary is
			// still valid; treat it as a qualification-ranked bind
			// when the underlying types otherwise match structurally.
			if from == tt.Elem {
				return Sequence{Rank: RankQualification}, true
			}
			return Sequence{Rank: RankNone}, false
		}
		return inner, true
	}
	if ft.Kind == KindReference {
		return in.IsConvertible(ft.Elem, to)
	}

	if ft.Kind == tt.Kind {
		switch ft.Kind {
		case KindIntegral:
			return Sequence{Rank: integralConversionRank(ft, tt)}, true
		case KindFloating:
			if tt.Width >= ft.Width {
				return Sequence{Rank: RankPromotion}, true
			}
			return Sequence{Rank: RankConversion}, true
		case KindPointer:
			if ft.Elem == tt.Elem {
				if !ft.Const && tt.Const {
					return Sequence{Rank: RankQualification}, true
				}
				if ft.Const == tt.Const && ft.Volatile == tt.Volatile {
					return Sequence{Rank: RankIdentity}, true
				}
			}
			return Sequence{Rank: RankNone}, false
		case KindArray:
			// array-to-pointer decay is handled by the caller before
			// reaching here (it changes Kind, not just qualifiers).
			return Sequence{Rank: RankNone}, false
		}
		return Sequence{Rank: RankNone}, false
	}

	if isArithmetic(ft.Kind) && isArithmetic(tt.Kind) {
		if ft.Kind == KindIntegral && tt.Kind == KindFloating {
			return Sequence{Rank: RankConversion}, true
		}
		if ft.Kind == KindFloating && tt.Kind == KindIntegral {
			return Sequence{Rank: RankConversion}, true
		}
	}

	if ft.Kind == KindBool && isArithmetic(tt.Kind) {
		return Sequence{Rank: RankConversion}, true
	}
	if isArithmetic(ft.Kind) && tt.Kind == KindBool {
		return Sequence{Rank: RankConversion}, true
	}

	// Array-to-pointer decay: T[N] -> T*.
	if ft.Kind == KindArray && tt.Kind == KindPointer && ft.Elem == tt.Elem {
		return Sequence{Rank: RankConversion}, true
	}

	// nullptr_t and 0 modelled as an untyped integral literal converting
	// to any pointer is handled by the caller supplying the literal's own
	// null-pointer-constant type; typesys has no dedicated nullptr kind
	// beyond an integral zero, so no special case is needed here.

	return Sequence{Rank: RankNone}, false
}

// Better reports whether a is at least as good as b in every position and
// strictly better in at least one, i.e. the "better conversion sequence"
// relation the overload resolver applies per-candidate.
func Better(a, b Sequence) bool { return a.Rank < b.Rank }

// CommonType applies the usual arithmetic conversions and returns the
// result type of a binary numeric operator over a and b, or (NoTypeID,
// false) if neither converts to the other.
func (in *Interner) CommonType(a, b TypeID) (TypeID, bool) {
	if a == b {
		return a, true
	}
	at, ok1 := in.Lookup(a)
	bt, ok2 := in.Lookup(b)
	if !ok1 || !ok2 {
		return NoTypeID, false
	}
	if !isArithmetic(at.Kind) || !isArithmetic(bt.Kind) {
		return NoTypeID, false
	}
	if at.Kind == KindFloating || bt.Kind == KindFloating {
		if at.Kind == KindFloating && bt.Kind == KindFloating {
			if at.Width >= bt.Width {
				return a, true
			}
			return b, true
		}
		if at.Kind == KindFloating {
			return a, true
		}
		return b, true
	}
	// Both integral: promote to at least int width, unify signedness by
	// preferring unsigned when widths match (usual arithmetic conversions).
	width := at.Width
	if bt.Width > width {
		width = bt.Width
	}
	if width < Width32 {
		width = Width32
	}
	signed := at.Signed && bt.Signed
	if at.Width == bt.Width && (at.Signed != bt.Signed) {
		signed = false
	} else if at.Width > bt.Width {
		signed = at.Signed
	} else if bt.Width > at.Width {
		signed = bt.Signed
	}
	return in.Intern(MakeIntegral(signed, width)), true
}
