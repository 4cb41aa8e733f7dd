package context

import (
	"testing"

	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func TestNewWiresLayoutProviderAndMangler(t *testing.T) {
	tree := ast.NewTree(16)
	tu := New(nil, tree, Options{})

	if tu.Table == nil || tu.Types == nil || tu.Layout == nil || tu.Templates == nil || tu.Mangler == nil {
		t.Fatalf("New left a component nil: %+v", tu)
	}

	classID, classScope := tu.Table.NewClass(tu.Strings.Intern("Widget"), tu.Table.GlobalScope, source.Span{}, ast.NoItemID, false)
	method := tu.Table.NewFunction(tu.Strings.Intern("area"), classScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleMethod, OwningClass: classID, IsVirtual: true, ReturnType: tu.Types.Builtins().Double,
	})
	cd, _ := tu.Table.Class(classID)
	cd.Members = append(cd.Members, method)

	l, err := tu.Layout.LayoutOf(classID)
	if err != nil {
		t.Fatalf("LayoutOf(Widget) failed: %v", err)
	}
	if !l.HasVTable {
		t.Fatalf("virtual method did not give the class a vtable")
	}
	idx := l.VTable.IndexOf(tu.Strings.Intern("area"))
	if idx < 0 {
		t.Fatalf("area not found in vtable")
	}
	if l.VTable.Entries[idx].TargetSymbol == "" {
		t.Fatalf("vtable entry has no mangled TargetSymbol; layout engine was not wired to the mangler")
	}
	want := tu.Mangler.Mangle(method)
	if l.VTable.Entries[idx].TargetSymbol != want {
		t.Fatalf("vtable TargetSymbol = %q, want %q", l.VTable.Entries[idx].TargetSymbol, want)
	}

	classType := tu.Types.Intern(typesys.MakeClass(typesys.DeclRef(classID)))
	size, _, ok := tu.Types.LayoutOf(classType)
	if !ok || size == 0 {
		t.Fatalf("typesys was not wired to the layout engine: LayoutOf(%v) = %d, %v", classType, size, ok)
	}
}

func TestFunctionsAndLowerAll(t *testing.T) {
	tree := ast.NewTree(16)
	tu := New(nil, tree, Options{})

	tu.Table.NewFunction(tu.Strings.Intern("f"), tu.Table.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: tu.Types.Builtins().Void,
	})
	tu.Table.NewFunction(tu.Strings.Intern("g"), tu.Table.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: tu.Types.Builtins().Int, IsDeleted: true,
	})

	fns := tu.Functions()
	if len(fns) != 2 {
		t.Fatalf("Functions() = %d decls, want 2", len(fns))
	}

	lowered := tu.LowerAll()
	if len(lowered) != 2 {
		t.Fatalf("LowerAll() = %d functions, want 2", len(lowered))
	}
	for _, f := range lowered {
		if f.Symbol == "" {
			t.Fatalf("lowered function %q has no mangled Symbol", f.Name)
		}
	}
}
