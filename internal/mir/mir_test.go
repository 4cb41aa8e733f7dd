package mir

import (
	"testing"

	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/layout"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func newFixture() (*decl.Table, *typesys.Interner, *ast.Tree, *source.Interner) {
	strings := source.NewInterner()
	tab := decl.NewTable(decl.Hints{}, strings)
	types := typesys.NewInterner()
	tree := ast.NewTree(16)
	return tab, types, tree, strings
}

// declareFree registers a free function in both the AST and the decl
// table and binds them together the way the resolver would, wiring the
// global scope's NameIndex so resolveCallee can find it by name.
func declareFree(tab *decl.Table, tree *ast.Tree, name string, params []decl.ParamData, astParams []ast.ParamID, returnType typesys.TypeID, body ast.StmtID) decl.DeclID {
	nameID := tab.Strings.Intern(name)
	item := tree.NewFunction(ast.FunctionDecl{
		Name:   nameID,
		Role:   ast.RoleFree,
		Params: astParams,
		Body:   body,
		Span:   source.Span{},
	})
	fnID := tab.NewFunction(nameID, tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role:       decl.RoleFree,
		Params:     params,
		ReturnType: returnType,
		Origin:     item,
	})
	global := tab.Scope(tab.GlobalScope)
	global.NameIndex[nameID] = append(global.NameIndex[nameID], fnID)
	return fnID
}

func nameRef(tree *ast.Tree, tab *decl.Table, name string) ast.ExprID {
	return tree.NewNameRef([]source.StringID{tab.Strings.Intern(name)}, nil, source.Span{})
}

func everyBlockTerminated(t *testing.T, f *Function) {
	t.Helper()
	for _, blk := range f.Blocks {
		if !blk.Term.IsSet() {
			t.Fatalf("block %d has no terminator", blk.ID)
		}
	}
}

func TestLowerFunctionArithmeticReturnsSum(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	intType := tree.NewNamedType([]source.StringID{tab.Strings.Intern("int")}, nil, false, false, source.Span{})

	aParam := tree.NewParam(tab.Strings.Intern("a"), intType, ast.NoExprID, source.Span{})
	bParam := tree.NewParam(tab.Strings.Intern("b"), intType, ast.NoExprID, source.Span{})

	sum := tree.NewBinary(ast.BinAdd, nameRef(tree, tab, "a"), nameRef(tree, tab, "b"), source.Span{})
	ret := tree.NewReturnStmt(sum, source.Span{})
	body := tree.NewCompoundStmt([]ast.StmtID{ret}, source.Span{})

	fnID := declareFree(tab, tree, "add", []decl.ParamData{
		{Name: tab.Strings.Intern("a"), Type: bi.Int},
		{Name: tab.Strings.Intern("b"), Type: bi.Int},
	}, []ast.ParamID{aParam, bParam}, bi.Int, body)

	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, nil, fnID)
	if f == nil {
		t.Fatalf("expected a lowered function")
	}
	if f.Poisoned {
		t.Fatalf("expected add to lower cleanly")
	}
	if f.ParamCount != 2 {
		t.Fatalf("expected 2 params, got %d", f.ParamCount)
	}
	entry := f.block(f.Entry)
	if entry == nil {
		t.Fatalf("expected an entry block")
	}
	if entry.Term.Kind != TermReturn {
		t.Fatalf("expected entry block to end in a return, got %v", entry.Term.Kind)
	}
	if !entry.Term.Return.HasValue {
		t.Fatalf("expected the return to carry a value")
	}
	everyBlockTerminated(t, f)
}

func TestLowerFunctionIfElsePicksBranch(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	intType := tree.NewNamedType([]source.StringID{tab.Strings.Intern("int")}, nil, false, false, source.Span{})

	aParam := tree.NewParam(tab.Strings.Intern("a"), intType, ast.NoExprID, source.Span{})
	bParam := tree.NewParam(tab.Strings.Intern("b"), intType, ast.NoExprID, source.Span{})

	cond := tree.NewBinary(ast.BinGt, nameRef(tree, tab, "a"), nameRef(tree, tab, "b"), source.Span{})
	thenRet := tree.NewReturnStmt(nameRef(tree, tab, "a"), source.Span{})
	elseRet := tree.NewReturnStmt(nameRef(tree, tab, "b"), source.Span{})
	ifStmt := tree.NewIfStmt(cond, thenRet, elseRet, source.Span{})
	body := tree.NewCompoundStmt([]ast.StmtID{ifStmt}, source.Span{})

	fnID := declareFree(tab, tree, "max", []decl.ParamData{
		{Name: tab.Strings.Intern("a"), Type: bi.Int},
		{Name: tab.Strings.Intern("b"), Type: bi.Int},
	}, []ast.ParamID{aParam, bParam}, bi.Int, body)

	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, nil, fnID)
	if f == nil || f.Poisoned {
		t.Fatalf("expected max to lower cleanly")
	}
	entry := f.block(f.Entry)
	if entry.Term.Kind != TermIf {
		t.Fatalf("expected the entry block to end in an if, got %v", entry.Term.Kind)
	}
	thenBlk := f.block(entry.Term.If.Then)
	elseBlk := f.block(entry.Term.If.Else)
	if thenBlk.Term.Kind != TermReturn || elseBlk.Term.Kind != TermReturn {
		t.Fatalf("expected both branches to end in a return")
	}
	// the unreachable join block downstream of two returning branches
	// still needs a terminator to satisfy the discipline invariant.
	everyBlockTerminated(t, f)
}

func TestLowerFunctionWhileLoopBuildsHeaderBodyExit(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	intType := tree.NewNamedType([]source.StringID{tab.Strings.Intern("int")}, nil, false, false, source.Span{})

	nParam := tree.NewParam(tab.Strings.Intern("n"), intType, ast.NoExprID, source.Span{})

	zero := tree.NewLiteral(ast.LiteralInt, "0", source.Span{})
	totalDecl := tree.NewVariable(ast.VariableDecl{Name: tab.Strings.Intern("total"), Type: intType, Init: zero, Role: ast.RoleLocal, Span: source.Span{}})
	totalStmt := tree.NewDeclStmt(totalDecl, source.Span{})

	iDecl := tree.NewVariable(ast.VariableDecl{Name: tab.Strings.Intern("i"), Type: intType, Init: zero, Role: ast.RoleLocal, Span: source.Span{}})
	iStmt := tree.NewDeclStmt(iDecl, source.Span{})

	cond := tree.NewBinary(ast.BinLt, nameRef(tree, tab, "i"), nameRef(tree, tab, "n"), source.Span{})

	addTotal := tree.NewBinary(ast.BinAdd, nameRef(tree, tab, "total"), nameRef(tree, tab, "i"), source.Span{})
	assignTotal := tree.NewBinary(ast.BinAssign, nameRef(tree, tab, "total"), addTotal, source.Span{})
	assignTotalStmt := tree.NewExprStmt(assignTotal, source.Span{})

	one := tree.NewLiteral(ast.LiteralInt, "1", source.Span{})
	addI := tree.NewBinary(ast.BinAdd, nameRef(tree, tab, "i"), one, source.Span{})
	assignI := tree.NewBinary(ast.BinAssign, nameRef(tree, tab, "i"), addI, source.Span{})
	assignIStmt := tree.NewExprStmt(assignI, source.Span{})

	loopBody := tree.NewCompoundStmt([]ast.StmtID{assignTotalStmt, assignIStmt}, source.Span{})
	whileStmt := tree.NewWhileStmt(cond, loopBody, source.Span{})

	ret := tree.NewReturnStmt(nameRef(tree, tab, "total"), source.Span{})
	body := tree.NewCompoundStmt([]ast.StmtID{totalStmt, iStmt, whileStmt, ret}, source.Span{})

	fnID := declareFree(tab, tree, "sumTo", []decl.ParamData{
		{Name: tab.Strings.Intern("n"), Type: bi.Int},
	}, []ast.ParamID{nParam}, bi.Int, body)

	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, nil, fnID)
	if f == nil || f.Poisoned {
		t.Fatalf("expected sumTo to lower cleanly")
	}
	entry := f.block(f.Entry)
	if entry.Term.Kind != TermGoto {
		t.Fatalf("expected entry to jump straight into the loop header, got %v", entry.Term.Kind)
	}
	header := f.block(entry.Term.Goto.Target)
	if header.Term.Kind != TermIf {
		t.Fatalf("expected the loop header to end in an if, got %v", header.Term.Kind)
	}
	bodyBlk := f.block(header.Term.If.Then)
	if bodyBlk.Term.Kind != TermGoto || bodyBlk.Term.Goto.Target != entry.Term.Goto.Target {
		t.Fatalf("expected the loop body to jump back to the header")
	}
	exit := f.block(header.Term.If.Else)
	if exit.Term.Kind != TermReturn {
		t.Fatalf("expected the loop exit to flow into the return, got %v", exit.Term.Kind)
	}
	everyBlockTerminated(t, f)
}

func TestLowerFunctionCallEndsBlockWithCallTerminator(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	intType := tree.NewNamedType([]source.StringID{tab.Strings.Intern("int")}, nil, false, false, source.Span{})

	xParam := tree.NewParam(tab.Strings.Intern("x"), intType, ast.NoExprID, source.Span{})
	squareBody := tree.NewCompoundStmt([]ast.StmtID{
		tree.NewReturnStmt(tree.NewBinary(ast.BinMul, nameRef(tree, tab, "x"), nameRef(tree, tab, "x"), source.Span{}), source.Span{}),
	}, source.Span{})
	declareFree(tab, tree, "square", []decl.ParamData{
		{Name: tab.Strings.Intern("x"), Type: bi.Int},
	}, []ast.ParamID{xParam}, bi.Int, squareBody)

	aParam := tree.NewParam(tab.Strings.Intern("a"), intType, ast.NoExprID, source.Span{})
	callExpr := tree.NewCall(nameRef(tree, tab, "square"), []ast.ExprID{nameRef(tree, tab, "a")}, source.Span{})
	computeBody := tree.NewCompoundStmt([]ast.StmtID{tree.NewReturnStmt(callExpr, source.Span{})}, source.Span{})
	computeID := declareFree(tab, tree, "compute", []decl.ParamData{
		{Name: tab.Strings.Intern("a"), Type: bi.Int},
	}, []ast.ParamID{aParam}, bi.Int, computeBody)

	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, nil, computeID)
	if f == nil || f.Poisoned {
		t.Fatalf("expected compute to lower cleanly")
	}
	entry := f.block(f.Entry)
	if entry.Term.Kind != TermCall {
		t.Fatalf("expected the entry block to end in a call, got %v", entry.Term.Kind)
	}
	if !entry.Term.Call.HasDest {
		t.Fatalf("expected the call to bind a destination for its non-void result")
	}
	normal := f.block(entry.Term.Call.Normal)
	if normal.Term.Kind != TermReturn {
		t.Fatalf("expected the call's normal successor to hold the return, got %v", normal.Term.Kind)
	}
	everyBlockTerminated(t, f)
}

func TestLowerFunctionVirtualCallDispatchesThroughVTable(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()

	shape, shapeScope := tab.NewClass(tab.Strings.Intern("Shape"), tab.GlobalScope, source.Span{}, ast.NoItemID, false)
	shapeCD, _ := tab.Class(shape)
	shapeCD.IsPolymorphic = true
	areaName := tab.Strings.Intern("area")
	area := tab.NewFunction(areaName, shapeScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleMethod, OwningClass: shape, IsVirtual: true, ReturnType: bi.Double,
	})
	shapeCD.Members = []decl.DeclID{area}

	engine := layout.New(tab, types, layout.X86_64LinuxGNU(), nil)
	types.SetLayoutProvider(engine)

	shapeTy := types.Intern(typesys.MakeClass(typesys.DeclRef(shape)))
	shapePtrTy := types.Intern(typesys.MakePointer(shapeTy, false, false))
	shapeTypeRef := tree.NewNamedType([]source.StringID{tab.Strings.Intern("Shape")}, nil, false, false, source.Span{})
	shapePtrTypeRef := tree.NewPointerType(shapeTypeRef, false, false, source.Span{})

	global := tab.Scope(tab.GlobalScope)
	global.NameIndex[tab.Strings.Intern("Shape")] = append(global.NameIndex[tab.Strings.Intern("Shape")], shape)

	sParam := tree.NewParam(tab.Strings.Intern("s"), shapePtrTypeRef, ast.NoExprID, source.Span{})
	callExpr := tree.NewCall(
		tree.NewMemberAccess(nameRef(tree, tab, "s"), areaName, true, source.Span{}),
		nil, source.Span{},
	)
	body := tree.NewCompoundStmt([]ast.StmtID{tree.NewReturnStmt(callExpr, source.Span{})}, source.Span{})

	fnID := declareFree(tab, tree, "callArea", []decl.ParamData{
		{Name: tab.Strings.Intern("s"), Type: shapePtrTy},
	}, []ast.ParamID{sParam}, bi.Double, body)

	f := LowerFunction(tab, types, tree, strings, engine, nil, nil, nil, fnID)
	if f == nil || f.Poisoned {
		t.Fatalf("expected callArea to lower cleanly")
	}
	entry := f.block(f.Entry)
	if entry.Term.Kind != TermVirtualCall {
		t.Fatalf("expected the entry block to end in a virtual call, got %v", entry.Term.Kind)
	}
	if entry.Term.VirtualCall.VTableSlot != 0 {
		t.Fatalf("expected area to occupy vtable slot 0, got %d", entry.Term.VirtualCall.VTableSlot)
	}
	everyBlockTerminated(t, f)
}

func TestLowerFunctionDeletedIsPoisonedWithUnreachableBody(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	nameID := tab.Strings.Intern("removed")
	fnID := tab.NewFunction(nameID, tab.GlobalScope, source.Span{}, decl.FunctionData{
		Role: decl.RoleFree, ReturnType: bi.Void, IsDeleted: true, Origin: ast.NoItemID,
	})

	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, nil, fnID)
	if f == nil {
		t.Fatalf("expected a lowered stand-in function")
	}
	if !f.Poisoned {
		t.Fatalf("expected a deleted function to be poisoned")
	}
	entry := f.block(f.Entry)
	if entry == nil || entry.Term.Kind != TermUnreachable {
		t.Fatalf("expected the poisoned body to be a single unreachable block")
	}
	everyBlockTerminated(t, f)
}

func TestLowerFunctionReportsDiagnosticForUnsupportedConstruct(t *testing.T) {
	tab, types, tree, strings := newFixture()
	bi := types.Builtins()
	body := tree.NewCompoundStmt([]ast.StmtID{
		tree.NewExprStmt(tree.NewNewExpr(ast.NoTypeRefID, nil, ast.NoExprID, source.Span{}), source.Span{}),
	}, source.Span{})
	fnID := declareFree(tab, tree, "leaky", nil, nil, bi.Void, body)

	bag := diag.NewBag(4)
	reporter := diag.BagReporter{Bag: bag}
	f := LowerFunction(tab, types, tree, strings, nil, nil, nil, reporter, fnID)
	if f == nil {
		t.Fatalf("expected a lowered function even when a construct is unsupported")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the unsupported `new` expression")
	}
}
