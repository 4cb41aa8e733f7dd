package template

import (
	"testing"

	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func newFixture() (*decl.Table, *typesys.Interner, *ast.Tree, *Engine) {
	tab := decl.NewTable(decl.Hints{}, nil)
	types := typesys.NewInterner()
	tree := ast.NewTree(16)
	e := New(tab, types, tree, tab.Strings, nil)
	return tab, types, tree, e
}

// identityTemplate builds `template<T> T identity(T x)`.
func identityTemplate(tab *decl.Table, types *typesys.Interner, requires ast.ExprID) decl.DeclID {
	paramDecl := tab.NewTemplateTypeParameter(tab.Strings.Intern("T"), tab.GlobalScope, source.Span{}, decl.NoDeclID, 0)
	tParam := types.Intern(typesys.MakeTemplateTypeParameter(0, tab.Strings.Intern("T")))

	fn := tab.NewFunction(tab.Strings.Intern("identity"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     []decl.ParamData{{Name: tab.Strings.Intern("x"), Type: tParam}},
		ReturnType: tParam,
	})

	params := []decl.TemplateParamData{{Name: tab.Strings.Intern("T"), Decl: paramDecl}}
	return tab.NewTemplate(tab.Strings.Intern("identity"), tab.GlobalScope, source.Span{}, params, fn, requires)
}

func TestInstantiateFunctionTemplateSubstitutesParamTypes(t *testing.T) {
	tab, types, _, e := newFixture()
	tmplID := identityTemplate(tab, types, ast.NoExprID)

	instID, ok := e.Instantiate(tmplID, Binding{types.Builtins().Int})
	if !ok {
		t.Fatalf("expected instantiation to succeed")
	}
	fd, ok := tab.Function(instID)
	if !ok {
		t.Fatalf("expected instantiated decl to be a function")
	}
	if fd.ReturnType != types.Builtins().Int {
		t.Fatalf("expected substituted return type Int, got %d", fd.ReturnType)
	}
	if fd.Params[0].Type != types.Builtins().Int {
		t.Fatalf("expected substituted param type Int, got %d", fd.Params[0].Type)
	}
}

func TestInstantiateMemoizesSameBinding(t *testing.T) {
	tab, types, _, e := newFixture()
	tmplID := identityTemplate(tab, types, ast.NoExprID)

	first, ok := e.Instantiate(tmplID, Binding{types.Builtins().Double})
	if !ok {
		t.Fatalf("expected first instantiation to succeed")
	}
	second, ok := e.Instantiate(tmplID, Binding{types.Builtins().Double})
	if !ok {
		t.Fatalf("expected second instantiation to succeed")
	}
	if first != second {
		t.Fatalf("expected memoised instantiation to reuse the same decl, got %d and %d", first, second)
	}

	third, ok := e.Instantiate(tmplID, Binding{types.Builtins().Int})
	if !ok {
		t.Fatalf("expected differently-bound instantiation to succeed")
	}
	if third == first {
		t.Fatalf("expected a distinct binding to produce a distinct decl")
	}
}

func TestDeduceFromArgumentType(t *testing.T) {
	tab, types, _, _ := newFixture()
	tmplID := identityTemplate(tab, types, ast.NoExprID)
	tmpl, _ := tab.Template(tmplID)

	binding, ok := Deduce(tab, types, tmpl, []typesys.TypeID{types.Builtins().Long})
	if !ok {
		t.Fatalf("expected deduction to succeed")
	}
	if binding[0] != types.Builtins().Long {
		t.Fatalf("expected T deduced to Long, got %d", binding[0])
	}
}

func TestDeduceConflictingArgumentsFails(t *testing.T) {
	tab, types, _, _ := newFixture()
	paramDecl := tab.NewTemplateTypeParameter(tab.Strings.Intern("T"), tab.GlobalScope, source.Span{}, decl.NoDeclID, 0)
	tParam := types.Intern(typesys.MakeTemplateTypeParameter(0, tab.Strings.Intern("T")))
	fn := tab.NewFunction(tab.Strings.Intern("both"), tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree,
		Params: []decl.ParamData{
			{Name: tab.Strings.Intern("a"), Type: tParam},
			{Name: tab.Strings.Intern("b"), Type: tParam},
		},
		ReturnType: types.Builtins().Void,
	})
	params := []decl.TemplateParamData{{Name: tab.Strings.Intern("T"), Decl: paramDecl}}
	tmplID := tab.NewTemplate(tab.Strings.Intern("both"), tab.GlobalScope, source.Span{}, params, fn, ast.NoExprID)
	tmpl, _ := tab.Template(tmplID)

	_, ok := Deduce(tab, types, tmpl, []typesys.TypeID{types.Builtins().Int, types.Builtins().Double})
	if ok {
		t.Fatalf("expected conflicting deductions for T (Int vs Double) to fail")
	}
}

func TestRequiresClauseLiteralFalseRejectsBinding(t *testing.T) {
	tab, types, tree, e := newFixture()
	falseExpr := tree.NewLiteral(ast.LiteralBool, "false", source.Span{})
	tmplID := identityTemplate(tab, types, falseExpr)

	_, ok := e.Instantiate(tmplID, Binding{types.Builtins().Int})
	if ok {
		t.Fatalf("expected a requires-clause of literal false to reject every binding")
	}
}

func TestRequiresClauseConceptRefEvaluatesNestedRequirement(t *testing.T) {
	tab, types, tree, e := newFixture()

	// concept Never<U> { requires false; }
	falseExpr := tree.NewLiteral(ast.LiteralBool, "false", source.Span{})
	uParamDecl := tab.NewTemplateTypeParameter(tab.Strings.Intern("U"), tab.GlobalScope, source.Span{}, decl.NoDeclID, 0)
	conceptName := tab.Strings.Intern("Never")
	conceptID := tab.NewConcept(conceptName, tab.GlobalScope, source.Span{}, decl.TemplateParamData{Name: tab.Strings.Intern("U"), Decl: uParamDecl}, falseExpr)
	globalScope := tab.Scope(tab.GlobalScope)
	globalScope.NameIndex[conceptName] = append(globalScope.NameIndex[conceptName], conceptID)

	// template<T> requires Never<T> identity(T x);
	nameRef := tree.NewNameRef([]source.StringID{conceptName}, []ast.TypeRefID{tree.NewNamedType([]source.StringID{tab.Strings.Intern("T")}, nil, false, false, source.Span{})}, source.Span{})
	tmplID := identityTemplate(tab, types, nameRef)

	_, ok := e.Instantiate(tmplID, Binding{types.Builtins().Int})
	if ok {
		t.Fatalf("expected Never<T> to reject every binding since its own requirement is false")
	}
}

func TestResolveProducesTemplateCandidate(t *testing.T) {
	tab, types, _, e := newFixture()
	tmplID := identityTemplate(tab, types, ast.NoExprID)

	cand, ok := e.Resolve(tmplID, []typesys.TypeID{types.Builtins().Char})
	if !ok {
		t.Fatalf("expected Resolve to produce a candidate")
	}
	if !cand.FromTemplate {
		t.Fatalf("expected FromTemplate to be set")
	}
	fd, ok := tab.Function(cand.Decl)
	if !ok {
		t.Fatalf("expected candidate decl to be the instantiated function")
	}
	if fd.Params[0].Type != types.Builtins().Char {
		t.Fatalf("expected instantiated param type Char, got %d", fd.Params[0].Type)
	}
}
