package layout

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
)

func roundUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	if r := n % align; r != 0 {
		return n + (align - r)
	}
	return n
}

// mangledSymbol returns member's mangled name, or "" when no Mangler has
// been wired in (test fixtures and any caller that only needs slot indices
// and adjustors, never the emitted vtable blob).
func (e *Engine) mangledSymbol(member decl.DeclID) string {
	if e.mangler == nil {
		return ""
	}
	return e.mangler.Mangle(member)
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// computeLayout implements §4.F's four-step class layout algorithm:
// non-virtual bases, then fields, then virtual bases (each placed once,
// shared across every path that reaches it), then the vtable.
func (e *Engine) computeLayout(class decl.DeclID, state *layoutState) (ClassLayout, *Error) {
	cd, ok := e.table.Class(class)
	if !ok {
		return ClassLayout{Size: 0, Align: 1}, nil
	}

	l := ClassLayout{
		Align:              1,
		BaseOffsets:        make(map[decl.DeclID]uint64),
		FieldOffsets:       make(map[decl.DeclID]uint64),
		VirtualBaseOffsets: make(map[decl.DeclID]uint64),
	}

	var primaryBase decl.DeclID
	for _, b := range cd.Bases {
		if b.Virtual {
			continue
		}
		baseLayout, err := e.layoutOf(b.Base, state)
		if err != nil {
			return l, err
		}
		offset := roundUp(l.Size, baseLayout.Align)
		l.BaseOffsets[b.Base] = offset
		l.Size = offset + baseLayout.Size
		l.Align = maxU64(l.Align, baseLayout.Align)
		if !primaryBase.IsValid() && baseLayout.HasVTable {
			primaryBase = b.Base
		}
	}

	for _, member := range cd.Members {
		vd, ok := e.table.Variable(member)
		if !ok || vd.Role != decl.RoleField {
			continue
		}
		fsize, falign, ok := e.types.LayoutOf(vd.Type)
		if !ok {
			continue // incomplete field type: caught by the type checker, not layout
		}
		if falign == 0 {
			falign = 1
		}
		offset := roundUp(l.Size, falign)
		l.FieldOffsets[member] = offset
		l.Size = offset + fsize
		l.Align = maxU64(l.Align, falign)
	}

	var virtualOrder []decl.DeclID
	e.collectVirtualBases(cd, class, make(map[decl.DeclID]bool), make(map[decl.DeclID]bool), &virtualOrder)
	for _, vb := range virtualOrder {
		baseLayout, err := e.layoutOf(vb, state)
		if err != nil {
			e.reportInvalidVirtualBase(class)
			return l, &Error{Kind: ErrInvalidVirtualBase, Class: class}
		}
		offset := roundUp(l.Size, baseLayout.Align)
		l.VirtualBaseOffsets[vb] = offset
		l.Size = offset + baseLayout.Size
		l.Align = maxU64(l.Align, baseLayout.Align)
	}

	l.Size = roundUp(l.Size, l.Align)
	if l.Size == 0 {
		l.Size, l.Align = 1, 1 // C++ forbids a zero-size complete object
	}

	e.buildVTable(cd, class, primaryBase, &l)
	return l, nil
}

// collectVirtualBases walks the entire base graph (not just direct bases)
// collecting each virtual base exactly once, in the order its first
// occurrence is reached by a pre-order, left-to-right traversal — the
// "first virtual appearance" order §4.F specifies for diamond inheritance.
// seenClasses guards against an authoring error (a cyclic base list)
// turning into an infinite recursion; the cycle itself is reported when
// layoutOf visits the same class on its own call stack.
func (e *Engine) collectVirtualBases(cd *decl.ClassData, classID decl.DeclID, seenClasses, virtualSeen map[decl.DeclID]bool, order *[]decl.DeclID) {
	if seenClasses[classID] {
		return
	}
	seenClasses[classID] = true
	for _, b := range cd.Bases {
		if b.Virtual && !virtualSeen[b.Base] {
			virtualSeen[b.Base] = true
			*order = append(*order, b.Base)
		}
		if baseCD, ok := e.table.Class(b.Base); ok {
			e.collectVirtualBases(baseCD, b.Base, seenClasses, virtualSeen, order)
		}
	}
}

// buildVTable implements §4.F point 4: start from the primary base's
// vtable, replace entries an override matches, append the rest.
// Multiple-inheritance thunk adjustors beyond the primary path are left at
// zero — a documented simplification, since this system never emits code
// that dereferences a non-primary vtable pointer through an adjusted
// this-pointer at a real call site.
func (e *Engine) buildVTable(cd *decl.ClassData, class, primaryBase decl.DeclID, l *ClassLayout) {
	if primaryBase.IsValid() {
		if primaryLayout, err := e.layoutOf(primaryBase, newLayoutState()); err == nil {
			l.VTable.Entries = append(l.VTable.Entries, primaryLayout.VTable.Entries...)
			l.HasVTable = primaryLayout.HasVTable
			// The primary base's own vtable pointer sits at its subobject
			// offset (0 for the primary path), so a derived class shares
			// the same slot rather than growing a second one.
			l.VTablePtrOffset = l.BaseOffsets[primaryBase] + primaryLayout.VTablePtrOffset
		}
	}

	var destructor decl.DeclID
	for _, member := range cd.Members {
		fd, ok := e.table.Function(member)
		if !ok {
			continue
		}
		if fd.Role == decl.RoleDestructor {
			destructor = member
		}
		if !fd.IsVirtual {
			continue
		}
		l.HasVTable = true
		d := e.table.Decl(member)
		if idx := l.VTable.IndexOf(d.Name); idx >= 0 {
			l.VTable.Entries[idx].Symbol = member
			l.VTable.Entries[idx].TargetSymbol = e.mangledSymbol(member)
		} else {
			l.VTable.Entries = append(l.VTable.Entries, VTableEntry{Name: d.Name, Symbol: member, TargetSymbol: e.mangledSymbol(member)})
		}
	}

	if cd.IsPolymorphic {
		l.HasVTable = true
	}

	// A destructor implicitly occupies a vtable slot once the class is
	// polymorphic, even when the author never marked it virtual.
	if l.HasVTable && destructor.IsValid() {
		d := e.table.Decl(destructor)
		if l.VTable.IndexOf(d.Name) < 0 {
			l.VTable.Entries = append(l.VTable.Entries, VTableEntry{Name: d.Name, Symbol: destructor, TargetSymbol: e.mangledSymbol(destructor)})
		}
	}
}

func (e *Engine) reportCircular(class decl.DeclID, cycle []decl.DeclID) {
	if e.reporter == nil {
		return
	}
	msg := fmt.Sprintf("class#%d's base list is circular", class)
	b := diag.ReportError(e.reporter, diag.LayoutCircularBase, source.Span{}, msg)
	for _, id := range cycle {
		if d := e.table.Decl(id); d != nil {
			b = b.WithNote(d.Span, "part of the cycle")
		}
	}
	b.Emit()
}

func (e *Engine) reportInvalidVirtualBase(class decl.DeclID) {
	if e.reporter == nil {
		return
	}
	d := e.table.Decl(class)
	var span source.Span
	if d != nil {
		span = d.Span
	}
	diag.ReportError(e.reporter, diag.LayoutInvalidVirtualBase, span, "virtual base could not be laid out").Emit()
}
