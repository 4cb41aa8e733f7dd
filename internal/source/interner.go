package source

// StringID is an interned identifier spelling (namespace/class/function/
// variable names). Decls, scopes and the mangler all key off StringID
// rather than raw strings so equality is a single integer compare.
type StringID uint32

// NoStringID marks the absence of a name (e.g. an anonymous union).
const NoStringID StringID = 0

// Interner hash-conses strings into stable, per-translation-unit IDs.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an interner seeded with the NoStringID sentinel.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the stable ID for s, allocating one if this is the first
// occurrence.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	cpy := string([]byte(s)) // detach from caller's backing array
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for id, or ("", false) if id is out of range.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics if id is invalid.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Has reports whether id refers to an interned string.
func (in *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

// Len returns the number of interned strings, including the sentinel.
func (in *Interner) Len() int {
	return len(in.byID)
}
