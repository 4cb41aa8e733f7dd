package main

import (
	"cppmir/internal/ast"
	cppctx "cppmir/internal/context"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// buildFixture returns a batch.Unit.Populate function for a small,
// self-contained "program": a free function computing a sum, and a
// polymorphic class with one virtual method. There is no Clang-based AST
// producer in this tree (§6.1 treats it as an external collaborator), so
// this stands in for one, the way SPEC_FULL.md's ambient CLI section
// describes: cmd/cppmirc "feeds a synthetic/fixture AST... through the
// core pipeline" to demonstrate wiring.
func buildFixture(tree *ast.Tree) func(*cppctx.TU) {
	return func(tu *cppctx.TU) {
		sp := source.Span{}
		strs := tu.Strings
		types := tu.Types

		intRef := tree.NewNamedType([]source.StringID{strs.Intern("int")}, nil, false, false, sp)
		aParam := tree.NewParam(strs.Intern("a"), intRef, ast.NoExprID, sp)
		bParam := tree.NewParam(strs.Intern("b"), intRef, ast.NoExprID, sp)

		lhs := tree.NewNameRef([]source.StringID{strs.Intern("a")}, nil, sp)
		rhs := tree.NewNameRef([]source.StringID{strs.Intern("b")}, nil, sp)
		sum := tree.NewBinary(ast.BinAdd, lhs, rhs, sp)
		ret := tree.NewReturnStmt(sum, sp)
		body := tree.NewCompoundStmt([]ast.StmtID{ret}, sp)

		addItem := tree.NewFunction(ast.FunctionDecl{
			Name:       strs.Intern("add"),
			Role:       ast.RoleFree,
			Params:     []ast.ParamID{aParam, bParam},
			ReturnType: intRef,
			Body:       body,
			Span:       sp,
		})
		tree.Root = append(tree.Root, addItem)

		tu.Table.NewFunction(strs.Intern("add"), tu.Table.GlobalScope, sp, decl.FunctionData{
			Role: decl.RoleFree,
			Params: []decl.ParamData{
				{Name: strs.Intern("a"), Type: types.Builtins().Int},
				{Name: strs.Intern("b"), Type: types.Builtins().Int},
			},
			ReturnType: types.Builtins().Int,
			Origin:     addItem,
		})

		greetItem := tree.NewFunction(ast.FunctionDecl{
			Name:       strs.Intern("greet"),
			Role:       ast.RoleFree,
			ReturnType: ast.NoTypeRefID,
			Body:       tree.NewCompoundStmt(nil, sp),
			Span:       sp,
		})
		tree.Root = append(tree.Root, greetItem)
		tu.Table.NewFunction(strs.Intern("greet"), tu.Table.GlobalScope, sp, decl.FunctionData{
			Role:       decl.RoleFree,
			ReturnType: types.Builtins().Void,
			Origin:     greetItem,
			IsExternC:  true,
		})

		classID, classScope := tu.Table.NewClass(strs.Intern("Shape"), tu.Table.GlobalScope, sp, ast.NoItemID, false)
		tu.Table.NewFunction(strs.Intern("area"), classScope, sp, decl.FunctionData{
			Role:        decl.RoleMethod,
			OwningClass: classID,
			IsVirtual:   true,
			IsPure:      true,
			ReturnType:  types.Builtins().Double,
		})

		classTy := typesys.MakeClass(typesys.DeclRef(classID))
		types.Intern(classTy)
	}
}
