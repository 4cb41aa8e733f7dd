package ast

import (
	"testing"

	"cppmir/internal/source"
)

func TestFunctionRoundTrip(t *testing.T) {
	strs := source.NewInterner()
	tree := NewTree(16)

	sp := source.Span{}
	intType := tree.NewNamedType([]source.StringID{strs.Intern("int")}, nil, false, false, sp)

	a := tree.NewParam(strs.Intern("a"), intType, NoExprID, sp)
	b := tree.NewParam(strs.Intern("b"), intType, NoExprID, sp)

	lhs := tree.NewNameRef([]source.StringID{strs.Intern("a")}, nil, sp)
	rhs := tree.NewNameRef([]source.StringID{strs.Intern("b")}, nil, sp)
	sum := tree.NewBinary(BinAdd, lhs, rhs, sp)
	ret := tree.NewReturnStmt(sum, sp)
	body := tree.NewCompoundStmt([]StmtID{ret}, sp)

	fn := tree.NewFunction(FunctionDecl{
		Name:       strs.Intern("add"),
		Role:       RoleFree,
		Params:     []ParamID{a, b},
		ReturnType: intType,
		Body:       body,
		Span:       sp,
	})
	tree.Root = append(tree.Root, fn)

	got, ok := tree.Function(fn)
	if !ok {
		t.Fatalf("Function(%d) not found", fn)
	}
	if got.Name != strs.Intern("add") || len(got.Params) != 2 {
		t.Fatalf("unexpected function payload: %+v", got)
	}

	compound, ok := tree.CompoundOf(got.Body)
	if !ok || len(compound.Stmts) != 1 {
		t.Fatalf("expected a single-statement body, got %+v", compound)
	}
	retData, ok := tree.ReturnOf(compound.Stmts[0])
	if !ok {
		t.Fatalf("expected a return statement")
	}
	bin, ok := tree.BinaryOf(retData.Value)
	if !ok || bin.Op != BinAdd {
		t.Fatalf("expected a BinAdd expression, got %+v", bin)
	}
}

func TestPolymorphicClassWalk(t *testing.T) {
	strs := source.NewInterner()
	tree := NewTree(16)
	sp := source.Span{}

	voidType := tree.NewNamedType([]source.StringID{strs.Intern("void")}, nil, false, false, sp)

	speak := tree.NewFunction(FunctionDecl{
		Name:       strs.Intern("speak"),
		Role:       RoleMethod,
		ReturnType: voidType,
		IsVirtual:  true,
		IsPure:     true,
		Access:     AccessPublic,
		Span:       sp,
	})
	animal := tree.NewClass(strs.Intern("Animal"), nil, []ItemID{speak}, true, false, sp)

	animalRef := tree.NewNamedType([]source.StringID{strs.Intern("Animal")}, nil, false, false, sp)
	base := tree.NewBaseSpecifier(animalRef, AccessPublic, false, sp)
	dog := tree.NewClass(strs.Intern("Dog"), []BaseSpecID{base}, nil, true, false, sp)

	tree.Root = []ItemID{animal, dog}

	var seen []source.StringID
	tree.WalkItems(tree.Root, func(id ItemID, item *Item) bool {
		seen = append(seen, tree.Name(id))
		return true
	})

	if len(seen) != 3 { // Animal, speak (member), Dog
		t.Fatalf("expected 3 visited items, got %d: %v", len(seen), seen)
	}

	dogDef, ok := tree.Class(dog)
	if !ok || len(dogDef.Bases) != 1 {
		t.Fatalf("expected Dog to carry one base specifier")
	}
	baseSpec := tree.BaseSpecifier(dogDef.Bases[0])
	if baseSpec.Access != AccessPublic || baseSpec.Virtual {
		t.Fatalf("unexpected base specifier: %+v", baseSpec)
	}
}
