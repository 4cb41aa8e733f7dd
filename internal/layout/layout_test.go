package layout

import (
	"testing"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func newFixture() (*decl.Table, *typesys.Interner, *Engine) {
	tab := decl.NewTable(decl.Hints{}, nil)
	types := typesys.NewInterner()
	e := New(tab, types, X86_64LinuxGNU(), nil)
	types.SetLayoutProvider(e)
	return tab, types, e
}

func TestFieldsPackedInDeclarationOrderWithAlignment(t *testing.T) {
	tab, types, e := newFixture()
	class, scope := tab.NewClass(tab.Strings.Intern("Point"), tab.GlobalScope, source.Span{}, 0, false)
	cd, _ := tab.Class(class)

	a := tab.NewVariable(tab.Strings.Intern("flag"), scope, source.Span{}, decl.VariableData{Role: decl.RoleField, Type: types.Builtins().Bool})
	b := tab.NewVariable(tab.Strings.Intern("value"), scope, source.Span{}, decl.VariableData{Role: decl.RoleField, Type: types.Builtins().Long})
	cd.Members = []decl.DeclID{a, b}

	l, err := e.LayoutOf(class)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	if l.FieldOffsets[a] != 0 {
		t.Fatalf("expected flag at offset 0, got %d", l.FieldOffsets[a])
	}
	if l.FieldOffsets[b] != 8 {
		t.Fatalf("expected value to be aligned to offset 8, got %d", l.FieldOffsets[b])
	}
	if l.Size != 16 || l.Align != 8 {
		t.Fatalf("expected size 16 align 8, got size=%d align=%d", l.Size, l.Align)
	}
}

func TestNonVirtualBasePlacedBeforeFields(t *testing.T) {
	tab, types, e := newFixture()
	base, baseScope := tab.NewClass(tab.Strings.Intern("Base"), tab.GlobalScope, source.Span{}, 0, false)
	baseCD, _ := tab.Class(base)
	baseField := tab.NewVariable(tab.Strings.Intern("x"), baseScope, source.Span{}, decl.VariableData{Role: decl.RoleField, Type: types.Builtins().Int})
	baseCD.Members = []decl.DeclID{baseField}

	derived, derivedScope := tab.NewClass(tab.Strings.Intern("Derived"), tab.GlobalScope, source.Span{}, 0, false)
	derivedCD, _ := tab.Class(derived)
	derivedCD.Bases = []decl.BaseSpec{{Base: base, Access: decl.VisPublic}}
	derivedField := tab.NewVariable(tab.Strings.Intern("y"), derivedScope, source.Span{}, decl.VariableData{Role: decl.RoleField, Type: types.Builtins().Int})
	derivedCD.Members = []decl.DeclID{derivedField}

	l, err := e.LayoutOf(derived)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	if l.BaseOffsets[base] != 0 {
		t.Fatalf("expected base at offset 0, got %d", l.BaseOffsets[base])
	}
	if l.FieldOffsets[derivedField] != 4 {
		t.Fatalf("expected derived field after the 4-byte base, got %d", l.FieldOffsets[derivedField])
	}
}

func TestDiamondVirtualBaseSharedOnce(t *testing.T) {
	tab, _, e := newFixture()
	grand, _ := tab.NewClass(tab.Strings.Intern("Grand"), tab.GlobalScope, source.Span{}, 0, false)

	left, _ := tab.NewClass(tab.Strings.Intern("Left"), tab.GlobalScope, source.Span{}, 0, false)
	leftCD, _ := tab.Class(left)
	leftCD.Bases = []decl.BaseSpec{{Base: grand, Virtual: true, Access: decl.VisPublic}}

	right, _ := tab.NewClass(tab.Strings.Intern("Right"), tab.GlobalScope, source.Span{}, 0, false)
	rightCD, _ := tab.Class(right)
	rightCD.Bases = []decl.BaseSpec{{Base: grand, Virtual: true, Access: decl.VisPublic}}

	diamond, _ := tab.NewClass(tab.Strings.Intern("Diamond"), tab.GlobalScope, source.Span{}, 0, false)
	diamondCD, _ := tab.Class(diamond)
	diamondCD.Bases = []decl.BaseSpec{{Base: left, Access: decl.VisPublic}, {Base: right, Access: decl.VisPublic}}

	l, err := e.LayoutOf(diamond)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	if len(l.VirtualBaseOffsets) != 1 {
		t.Fatalf("expected exactly one shared virtual base subobject, got %+v", l.VirtualBaseOffsets)
	}
	if _, ok := l.VirtualBaseOffsets[grand]; !ok {
		t.Fatalf("expected Grand to be recorded as a virtual base offset")
	}
}

func TestCircularBaseReportsLayoutError(t *testing.T) {
	tab, _, e := newFixture()
	a, _ := tab.NewClass(tab.Strings.Intern("A"), tab.GlobalScope, source.Span{}, 0, false)
	b, _ := tab.NewClass(tab.Strings.Intern("B"), tab.GlobalScope, source.Span{}, 0, false)
	aCD, _ := tab.Class(a)
	bCD, _ := tab.Class(b)
	aCD.Bases = []decl.BaseSpec{{Base: b, Access: decl.VisPublic}}
	bCD.Bases = []decl.BaseSpec{{Base: a, Access: decl.VisPublic}}

	bag := diag.NewBag(4)
	e.reporter = diag.BagReporter{Bag: bag}

	if _, err := e.LayoutOf(a); err == nil {
		t.Fatalf("expected a circular base error")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the circular base list")
	}
}

func TestVirtualFunctionOverrideReplacesInheritedSlot(t *testing.T) {
	tab, types, e := newFixture()
	base, baseScope := tab.NewClass(tab.Strings.Intern("Shape"), tab.GlobalScope, source.Span{}, 0, false)
	baseCD, _ := tab.Class(base)
	baseCD.IsPolymorphic = true
	area := tab.NewFunction(tab.Strings.Intern("area"), baseScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleMethod, OwningClass: base, IsVirtual: true, ReturnType: types.Builtins().Double,
	})
	baseCD.Members = []decl.DeclID{area}

	derived, derivedScope := tab.NewClass(tab.Strings.Intern("Circle"), tab.GlobalScope, source.Span{}, 0, false)
	derivedCD, _ := tab.Class(derived)
	derivedCD.Bases = []decl.BaseSpec{{Base: base, Access: decl.VisPublic}}
	overriddenArea := tab.NewFunction(tab.Strings.Intern("area"), derivedScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleMethod, OwningClass: derived, IsVirtual: true, ReturnType: types.Builtins().Double,
	})
	derivedCD.Members = []decl.DeclID{overriddenArea}

	l, err := e.LayoutOf(derived)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	if !l.HasVTable {
		t.Fatalf("expected Circle to be polymorphic")
	}
	if len(l.VTable.Entries) != 1 {
		t.Fatalf("expected exactly one vtable slot (override, not append), got %+v", l.VTable.Entries)
	}
	if l.VTable.Entries[0].Symbol != overriddenArea {
		t.Fatalf("expected the override to replace the inherited slot")
	}
}
