package decl

import (
	"testing"

	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func TestNewTableSeedsGlobalNamespace(t *testing.T) {
	tab := NewTable(Hints{}, nil)
	if !tab.GlobalScope.IsValid() || !tab.GlobalNamespace.IsValid() {
		t.Fatalf("expected a valid global scope and namespace decl")
	}
	d := tab.Decl(tab.GlobalNamespace)
	if d == nil || d.Kind != KindNamespace {
		t.Fatalf("expected global decl to be a namespace, got %+v", d)
	}
	ns, ok := tab.Namespace(tab.GlobalNamespace)
	if !ok || ns.Scope != tab.GlobalScope {
		t.Fatalf("expected namespace payload to reference the global scope")
	}
}

func TestAttachBodyPanicsOnSecondCall(t *testing.T) {
	tab := NewTable(Hints{}, nil)
	types := typesys.NewInterner()
	fn := tab.NewFunction(tab.Strings.Intern("f"), tab.GlobalScope, source.Span{}, FunctionData{
		ReturnType: types.Builtins().Void,
	})
	d := tab.Decl(fn)
	AttachBody(d, "lowered-body-1")
	if !HasBody(d) {
		t.Fatalf("expected HasBody to report true after AttachBody")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on second AttachBody call")
		}
	}()
	AttachBody(d, "lowered-body-2")
}

func TestClassBaseSpecifiers(t *testing.T) {
	tab := NewTable(Hints{}, nil)
	base, _ := tab.NewClass(tab.Strings.Intern("Animal"), tab.GlobalScope, source.Span{}, 0, false)
	derived, _ := tab.NewClass(tab.Strings.Intern("Dog"), tab.GlobalScope, source.Span{}, 0, false)
	cd, ok := tab.Class(derived)
	if !ok {
		t.Fatalf("expected class payload")
	}
	cd.Bases = append(cd.Bases, BaseSpec{Base: base, Access: VisPublic})
	if len(cd.Bases) != 1 || cd.Bases[0].Base != base {
		t.Fatalf("unexpected base list: %+v", cd.Bases)
	}
}
