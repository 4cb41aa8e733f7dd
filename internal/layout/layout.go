package layout

import (
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/mangle"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// VTableEntry is one slot of a class's virtual function table: the
// function it calls and the this-pointer adjustment needed when the slot
// is reached through a base subobject other than the primary one.
// TargetSymbol is the mangled name §3/§6.2 require the emitted vtable blob
// to carry; Symbol is the same function by decl reference, kept alongside
// for IndexOf and for callers (mostly tests) that never wire a Mangler in.
type VTableEntry struct {
	Name         source.StringID
	Symbol       decl.DeclID
	TargetSymbol string
	Adjustor     int64
}

// VTable is a class's own virtual function table, already merged with
// whatever it inherits from its primary base.
type VTable struct {
	Entries []VTableEntry
}

// IndexOf returns the slot index for name, or -1 if name has no entry.
func (v *VTable) IndexOf(name source.StringID) int {
	if v == nil {
		return -1
	}
	for i, e := range v.Entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// ClassLayout is the ABI layout of one class per §4.F: base subobject and
// field offsets, and — for polymorphic classes — a vtable plus, for any
// virtual base, its offset within the most-derived object.
type ClassLayout struct {
	Size, Align uint64

	BaseOffsets        map[decl.DeclID]uint64
	FieldOffsets       map[decl.DeclID]uint64
	VirtualBaseOffsets map[decl.DeclID]uint64

	HasVTable       bool
	VTable          VTable
	VTablePtrOffset uint64 // meaningful only when HasVTable is set
}

// Engine computes and caches ClassLayout for the classes in one table.
type Engine struct {
	table    *decl.Table
	types    *typesys.Interner
	target   Target
	reporter diag.Reporter
	cache    *cache
	mangler  *mangle.Mangler
}

// SetMangler wires component H in, matching typesys.SetLayoutProvider's
// inversion-of-control shape: once set, every vtable entry this engine
// builds carries its target function's mangled symbol alongside the decl
// reference. Must be called before the first LayoutOf, and at most once —
// entries built before it is set are cached without a TargetSymbol.
func (e *Engine) SetMangler(m *mangle.Mangler) { e.mangler = m }

// New builds an Engine over table/types for target, reporting layout
// failures through reporter.
func New(table *decl.Table, types *typesys.Interner, target Target, reporter diag.Reporter) *Engine {
	return &Engine{table: table, types: types, target: target, reporter: reporter, cache: newCache()}
}

// SizeAlign implements typesys.LayoutProvider so the type interner can
// resolve the size of a class-typed field without importing this package.
func (e *Engine) SizeAlign(ref typesys.DeclRef) (uint64, uint64, bool) {
	l, err := e.LayoutOf(decl.DeclID(ref))
	if err != nil {
		return 0, 0, false
	}
	return l.Size, l.Align, true
}

type layoutState struct {
	stack []decl.DeclID
	index map[decl.DeclID]int
}

func newLayoutState() *layoutState {
	return &layoutState{index: make(map[decl.DeclID]int, 16)}
}

// LayoutOf computes (and caches) the layout of class.
func (e *Engine) LayoutOf(class decl.DeclID) (ClassLayout, error) {
	if e.cache == nil {
		e.cache = newCache()
	}
	if cached, ok := e.cache.get(class); ok {
		if cached.Err != nil {
			return cached.Layout, cached.Err
		}
		return cached.Layout, nil
	}
	l, err := e.layoutOf(class, newLayoutState())
	if err != nil {
		return l, err
	}
	return l, nil
}

func (e *Engine) layoutOf(class decl.DeclID, state *layoutState) (ClassLayout, *Error) {
	if idx, ok := state.index[class]; ok {
		cycle := append([]decl.DeclID(nil), state.stack[idx:]...)
		cycle = append(cycle, class)
		err := &Error{Kind: ErrCircularBase, Class: class, Cycle: cycle}
		e.reportCircular(class, cycle)
		return ClassLayout{Size: 0, Align: 1}, err
	}
	state.index[class] = len(state.stack)
	state.stack = append(state.stack, class)
	l, err := e.computeLayout(class, state)
	state.stack = state.stack[:len(state.stack)-1]
	delete(state.index, class)

	e.cache.put(class, cacheEntry{Layout: l, Err: err})
	return l, err
}
