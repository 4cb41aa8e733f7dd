package mangle

import (
	"testing"

	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

func newFixture() (*decl.Table, *typesys.Interner, *Mangler) {
	tab := decl.NewTable(decl.Hints{}, nil)
	types := typesys.NewInterner()
	return tab, types, New(tab, types, nil, nil)
}

func TestMangleIsStableAcrossRepeatedCalls(t *testing.T) {
	tab, types, m := newFixture()
	fn := tab.NewFunction(tab.Strings.Intern("area"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: types.Builtins().Double,
	})

	first := m.Mangle(fn)
	second := m.Mangle(fn)
	if first != second {
		t.Fatalf("mangling the same decl twice produced different names: %q vs %q", first, second)
	}
}

func TestMangleLookupRoundTrip(t *testing.T) {
	tab, types, m := newFixture()
	fn := tab.NewFunction(tab.Strings.Intern("square"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     []decl.ParamData{{Name: tab.Strings.Intern("x"), Type: types.Builtins().Int}},
		ReturnType: types.Builtins().Int,
	})

	name := m.Mangle(fn)
	got, ok := m.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) found nothing", name)
	}
	if got != fn {
		t.Fatalf("Lookup(%q) = %d, want %d", name, got, fn)
	}
}

func TestOverloadsWithDifferentParametersMangleDifferently(t *testing.T) {
	tab, types, m := newFixture()
	intOverload := tab.NewFunction(tab.Strings.Intern("f"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, Params: []decl.ParamData{{Type: types.Builtins().Int}}, ReturnType: types.Builtins().Void,
	})
	doubleOverload := tab.NewFunction(tab.Strings.Intern("f"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, Params: []decl.ParamData{{Type: types.Builtins().Double}}, ReturnType: types.Builtins().Void,
	})

	a, b := m.Mangle(intOverload), m.Mangle(doubleOverload)
	if a == b {
		t.Fatalf("two overloads with distinct parameter types mangled identically: %q", a)
	}
}

func TestNamespacedFunctionEncodesNestedName(t *testing.T) {
	tab, types, m := newFixture()
	_, fooScope := tab.NewNamespace(tab.Strings.Intern("foo"), tab.GlobalScope, source.Span{})
	fn := tab.NewFunction(tab.Strings.Intern("helper"), fooScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: types.Builtins().Int,
	})

	name := m.Mangle(fn)
	want := "_ZN3foo6helperEv"
	if name != want {
		t.Fatalf("Mangle(foo::helper) = %q, want %q", name, want)
	}
}

func TestGlobalScopeFunctionSkipsNestedNameWrapper(t *testing.T) {
	tab, types, m := newFixture()
	fn := tab.NewFunction(tab.Strings.Intern("factorial"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     []decl.ParamData{{Type: types.Builtins().Int}},
		ReturnType: types.Builtins().Int,
	})

	name := m.Mangle(fn)
	want := "_Z9factoriali"
	if name != want {
		t.Fatalf("Mangle(factorial) = %q, want %q", name, want)
	}
}

func TestMainIsNeverMangled(t *testing.T) {
	tab, types, m := newFixture()
	fn := tab.NewFunction(tab.Strings.Intern("main"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: types.Builtins().Int,
	})
	if got := m.Mangle(fn); got != "main" {
		t.Fatalf("Mangle(main) = %q, want \"main\"", got)
	}
}

func TestMethodEncodesOwningClassInNestedName(t *testing.T) {
	tab, types, m := newFixture()
	classID, classScope := tab.NewClass(tab.Strings.Intern("Shape"), tab.GlobalScope, source.Span{}, 0, false)
	method := tab.NewFunction(tab.Strings.Intern("area"), classScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleMethod, OwningClass: classID, ReturnType: types.Builtins().Double,
	})

	name := m.Mangle(method)
	want := "_ZN5Shape4areaEv"
	if name != want {
		t.Fatalf("Mangle(Shape::area) = %q, want %q", name, want)
	}
}

func TestPointerAndReferenceParametersEncodeElementAndQualifiers(t *testing.T) {
	tab, types, m := newFixture()

	intType, _ := types.Lookup(types.Builtins().Int)
	constInt := types.Intern(intType.WithCV(true, false))
	pointerToConstInt := types.Intern(typesys.MakePointer(constInt, false, false))
	intRef := types.Intern(typesys.MakeReference(types.Builtins().Int, false))
	fn := tab.NewFunction(tab.Strings.Intern("f"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     []decl.ParamData{{Type: pointerToConstInt}, {Type: intRef}},
		ReturnType: types.Builtins().Void,
	})

	name := m.Mangle(fn)
	want := "_Z1fPKiRi"
	if name != want {
		t.Fatalf("Mangle(f(const int*, int&)) = %q, want %q", name, want)
	}
}

func TestConstPointerItselfEncodesDifferentlyFromPointerToConst(t *testing.T) {
	tab, types, m := newFixture()

	intType, _ := types.Lookup(types.Builtins().Int)
	constInt := types.Intern(intType.WithCV(true, false))
	pointerToConstInt := types.Intern(typesys.MakePointer(constInt, false, false))
	constPointerToInt := types.Intern(typesys.MakePointer(types.Builtins().Int, true, false))

	a := tab.NewFunction(tab.Strings.Intern("a"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, Params: []decl.ParamData{{Type: pointerToConstInt}}, ReturnType: types.Builtins().Void,
	})
	b := tab.NewFunction(tab.Strings.Intern("b"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, Params: []decl.ParamData{{Type: constPointerToInt}}, ReturnType: types.Builtins().Void,
	})

	nameA, nameB := m.Mangle(a), m.Mangle(b)
	if nameA == nameB {
		t.Fatalf("pointer-to-const and const-pointer mangled identically: %q", nameA)
	}
	if nameA != "_Z1aPKi" {
		t.Fatalf("Mangle(a(const int*)) = %q, want %q", nameA, "_Z1aPKi")
	}
	if nameB != "_Z1bKPi" {
		t.Fatalf("Mangle(b(int* const)) = %q, want %q", nameB, "_Z1bKPi")
	}
}

func TestTemplateInstantiationEncodesCanonicalBinding(t *testing.T) {
	tab := decl.NewTable(decl.Hints{}, nil)
	types := typesys.NewInterner()
	tree := ast.NewTree(16)
	tmplEngine := template.New(tab, types, tree, tab.Strings, nil)
	m := New(tab, types, tmplEngine, nil)

	tParam := types.Intern(typesys.MakeTemplateTypeParameter(0, tab.Strings.Intern("T")))
	paramDecl := tab.NewTemplateTypeParameter(tab.Strings.Intern("T"), tab.GlobalScope, source.Span{}, decl.NoDeclID, 0)
	entity := tab.NewFunction(tab.Strings.Intern("twice"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     []decl.ParamData{{Type: tParam}},
		ReturnType: tParam,
	})
	tmplID := tab.NewTemplate(tab.Strings.Intern("twice"), tab.GlobalScope, source.Span{},
		[]decl.TemplateParamData{{Name: tab.Strings.Intern("T"), Decl: paramDecl}}, entity, ast.NoExprID)

	intInst, ok := tmplEngine.Instantiate(tmplID, template.Binding{types.Builtins().Int})
	if !ok {
		t.Fatalf("Instantiate(twice<int>) failed")
	}
	doubleInst, ok := tmplEngine.Instantiate(tmplID, template.Binding{types.Builtins().Double})
	if !ok {
		t.Fatalf("Instantiate(twice<double>) failed")
	}

	intName := m.Mangle(intInst)
	doubleName := m.Mangle(doubleInst)
	if intName == doubleName {
		t.Fatalf("twice<int> and twice<double> mangled identically: %q", intName)
	}
	if intName != "_Z5twiceIiEi" {
		t.Fatalf("Mangle(twice<int>) = %q, want %q", intName, "_Z5twiceIiEi")
	}
}

func TestExternCFunctionIsEmittedUnmangled(t *testing.T) {
	tab, types, m := newFixture()
	fn := tab.NewFunction(tab.Strings.Intern("puts"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, IsExternC: true,
		Params:     []decl.ParamData{{Type: types.Intern(typesys.MakePointer(types.Builtins().Char, true, false))}},
		ReturnType: types.Builtins().Int,
	})

	if got := m.Mangle(fn); got != "puts" {
		t.Fatalf("Mangle(extern \"C\" puts) = %q, want %q", got, "puts")
	}
}

func TestDistinctDeclsMangledIdenticallyReportCollision(t *testing.T) {
	tab, types, _ := newFixture()
	m := New(tab, types, nil, nil)
	bag := diag.NewBag(4)
	m.reporter = diag.BagReporter{Bag: bag}

	// Two decls that structurally resolve to the same name (the mangler
	// has no way to know these came from an authoring error upstream;
	// component B is what should have prevented the redeclaration).
	a := tab.NewFunction(tab.Strings.Intern("clash"), tab.GlobalScope, source.Span{}, decl.FunctionData{Role: decl.RoleFree, ReturnType: types.Builtins().Void})
	b := tab.NewFunction(tab.Strings.Intern("clash"), tab.GlobalScope, source.Span{}, decl.FunctionData{Role: decl.RoleFree, ReturnType: types.Builtins().Void})

	first := m.Mangle(a)
	second := m.Mangle(b)
	if first != second {
		t.Fatalf("expected identical signatures to mangle identically, got %q and %q", first, second)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a MangleCollision diagnostic")
	}
	got, ok := m.Lookup(first)
	if !ok || got != a {
		t.Fatalf("Lookup should still resolve to the first-registered decl, got %d ok=%v", got, ok)
	}
}

func TestLocalVariableIsUnsupportedButDeterministic(t *testing.T) {
	tab, types, m := newFixture()
	local := tab.NewVariable(tab.Strings.Intern("tmp"), tab.GlobalScope, source.Span{}, decl.VariableData{
		Role: decl.RoleLocal, Type: types.Builtins().Int,
	})

	first := m.Mangle(local)
	second := m.Mangle(local)
	if first != second {
		t.Fatalf("unsupported-symbol fallback was not stable: %q vs %q", first, second)
	}
}
