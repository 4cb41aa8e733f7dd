package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// lowerCtorPrologue emits the compiler-generated prefix §4.G requires
// before a constructor's own body runs: base constructors first (in base
// declaration order), then field initializers as assigns (in field
// declaration order, not initializer-list order), then — for a
// polymorphic class — the vtable-pointer write that lets a virtual call
// made from later in the same constructor's body dispatch through this
// class's own vtable rather than a base's.
func (b *funcBuilder) lowerCtorPrologue(fn *decl.FunctionData, fnAst *ast.FunctionDecl, span source.Span) {
	classID := fn.OwningClass
	if !classID.IsValid() {
		return
	}
	cd, ok := b.table.Class(classID)
	if !ok {
		return
	}

	for _, base := range cd.Bases {
		b.lowerBaseCtorCall(classID, base, fnAst.Inits, span)
	}

	for _, member := range cd.Members {
		vd, ok := b.table.Variable(member)
		if !ok || vd.Role != decl.RoleField {
			continue
		}
		b.lowerFieldInit(member, vd, fnAst.Inits)
	}

	if b.layout == nil {
		return
	}
	l, err := b.layout.LayoutOf(classID)
	if err != nil || !l.HasVTable {
		return
	}
	b.writeVTablePointer(classID)
}

// findBaseInit returns the member-initializer targeting baseName, the
// last segment of a base initializer's path (`Base(args)` matches a base
// named `Base` regardless of how it was qualified in source).
func findBaseInit(inits []ast.MemberInit, baseName source.StringID) (ast.MemberInit, bool) {
	for _, in := range inits {
		if in.Field != source.NoStringID || len(in.BasePath) == 0 {
			continue
		}
		if in.BasePath[len(in.BasePath)-1] == baseName {
			return in, true
		}
	}
	return ast.MemberInit{}, false
}

// findFieldInit returns the member-initializer for fieldName, if any.
func findFieldInit(inits []ast.MemberInit, fieldName source.StringID) (ast.MemberInit, bool) {
	for _, in := range inits {
		if in.Field == fieldName {
			return in, true
		}
	}
	return ast.MemberInit{}, false
}

// lowerBaseCtorCall calls base's constructor over the *this-relative base
// subobject computed by the layout engine. A base with no user-declared
// constructor (the common case for a plain data base) has nothing to
// call and is silently skipped — its fields, if any, keep their
// zero/indeterminate value the same way a trivial default constructor
// would leave them.
func (b *funcBuilder) lowerBaseCtorCall(classID decl.DeclID, base decl.BaseSpec, inits []ast.MemberInit, span source.Span) {
	if b.layout == nil || b.thisLocal == NoLocalID {
		return
	}
	baseDecl := b.table.Decl(base.Base)
	if baseDecl == nil {
		return
	}
	ctorID, ctorFn, ok := b.findConstructor(base.Base)
	if !ok {
		return
	}

	var args []Operand
	if init, hasInit := findBaseInit(inits, baseDecl.Name); hasInit {
		args, _ = b.lowerArgs(init.Args)
	}

	l, err := b.layout.LayoutOf(classID)
	offset := uint64(0)
	if err == nil {
		offset = l.BaseOffsets[base.Base]
	}

	receiver := b.subobjectPointer(base.Base, offset, span)
	b.emitDispatch(ctorID, ctorFn, true, CopyOf(PlaceOf(receiver)), args, &ast.Expr{Span: span})
}

// lowerFieldInit assigns a class field its initializer expression. A field
// with no initializer, or with an empty one, gets no assignment at all:
// neither a zero value for a scalar field nor a default-constructor call
// for a class-typed field, matching lowerCtorPrologue's "no constructor
// to call" base case above.
func (b *funcBuilder) lowerFieldInit(member decl.DeclID, vd *decl.VariableData, inits []ast.MemberInit) {
	memberDecl := b.table.Decl(member)
	if memberDecl == nil {
		return
	}
	init, hasInit := findFieldInit(inits, memberDecl.Name)
	if !hasInit || len(init.Args) == 0 {
		return
	}
	fieldIdx, ok := b.fieldIndexOf(vd.OwningClass, member)
	if !ok {
		return
	}
	place := Place{Root: b.thisLocal, Proj: []PlaceProj{
		{Kind: ProjDeref},
		{Kind: ProjField, FieldIdx: fieldIdx},
	}}
	op, _ := b.lowerExpr(init.Args[0])
	b.emit(AssignOf(place, UseOf(op)))
}

// findConstructor finds classID's own constructor (this system does not
// model constructor overloading: the first RoleConstructor member found
// is used).
func (b *funcBuilder) findConstructor(classID decl.DeclID) (decl.DeclID, *decl.FunctionData, bool) {
	cd, ok := b.table.Class(classID)
	if !ok {
		return decl.NoDeclID, nil, false
	}
	for _, m := range cd.Members {
		fd, ok := b.table.Function(m)
		if !ok || fd.Role != decl.RoleConstructor {
			continue
		}
		return m, fd, true
	}
	return decl.NoDeclID, nil, false
}

// subobjectPointer materializes a pointer to the base subobject of class
// base at byte offset offset within *b.thisLocal, the same
// address-of-a-downcast-place shape lowerMethodCall uses for a virtual
// receiver.
func (b *funcBuilder) subobjectPointer(base decl.DeclID, offset uint64, span source.Span) LocalID {
	place := Place{Root: b.thisLocal, Proj: []PlaceProj{
		{Kind: ProjDeref},
		{Kind: ProjDowncastBase, DowncastClass: base, DowncastOffset: offset},
	}}
	baseTy := b.types.Intern(typesys.MakeClass(typesys.DeclRef(base)))
	ptrTy := b.types.Intern(typesys.MakePointer(baseTy, false, false))
	local := b.newTemp(ptrTy, span)
	b.emit(AssignOf(PlaceOf(local), Rvalue{Kind: RvalueAddressOf, AddressOf: place}))
	return local
}

// writeVTablePointer writes classID's own vtable address into the
// vtable-pointer slot of the object *b.thisLocal points to. Called once
// after base construction and field initializers complete, so it is the
// last write to that slot before the constructor's own body (and any
// virtual call inside it) runs, per §4.G's during-construction dispatch
// rule.
func (b *funcBuilder) writeVTablePointer(classID decl.DeclID) {
	place := Place{Root: b.thisLocal, Proj: []PlaceProj{
		{Kind: ProjDeref},
		{Kind: ProjVTablePtr},
	}}
	ptrTy := b.types.Intern(typesys.MakePointer(b.types.Builtins().Void, false, false))
	op := ConstOf(Const{Kind: ConstVTable, Type: ptrTy, Symbol: classID})
	b.emit(AssignOf(place, UseOf(op)))
}
