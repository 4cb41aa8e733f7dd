package mir

import (
	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// resolveTypeRef resolves a local variable's declared type. It only
// handles the shapes the corpus this system targets actually writes for a
// local: a bare builtin spelling, a single-segment class/enum/alias name
// visible in the global scope, or a pointer/reference/array built from
// one of those — the same narrow, structural approach
// internal/template/requires.go uses for resolving a template parameter's
// own name, applied here to local-variable declarations instead. A
// qualified name is looked up by its last segment in the global scope. A
// type reference of any other shape reports LoweringUnsupportedConstruct
// here; a name that resolves to nothing returns false without a diagnostic
// of its own, and each caller reports LoweringUnsupportedConstruct for it.
func (b *funcBuilder) resolveTypeRef(ref ast.TypeRefID) (typesys.TypeID, bool) {
	tr := b.tree.TypeRef(ref)
	if tr == nil {
		return typesys.NoTypeID, false
	}
	switch tr.Kind {
	case ast.TypeRefNamed:
		return b.resolveNamedType(tr)
	case ast.TypeRefPointer:
		elem, ok := b.resolveTypeRef(tr.Inner)
		if !ok {
			return typesys.NoTypeID, false
		}
		return b.types.Intern(typesys.MakePointer(elem, tr.IsConst, tr.IsVolatile)), true
	case ast.TypeRefReference:
		elem, ok := b.resolveTypeRef(tr.Inner)
		if !ok {
			return typesys.NoTypeID, false
		}
		return b.types.Intern(typesys.MakeReference(elem, tr.IsRvalue)), true
	case ast.TypeRefArray:
		elem, ok := b.resolveTypeRef(tr.Inner)
		if !ok {
			return typesys.NoTypeID, false
		}
		if lit, ok := b.tree.LiteralOf(tr.Bound); ok && lit.Kind == ast.LiteralInt {
			n, parseErr := parseArrayBound(lit.Text)
			if parseErr == nil {
				return b.types.Intern(typesys.MakeArray(elem, n)), true
			}
		}
		return b.types.Intern(typesys.MakeUnknownBoundArray(elem)), true
	default:
		b.reportUnsupported(tr.Span, "type reference shape is not supported by MIR lowering")
		return typesys.NoTypeID, false
	}
}

func parseArrayBound(text string) (uint64, error) {
	var n uint64
	for _, r := range text {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + uint64(r-'0')
	}
	return n, nil
}

func (b *funcBuilder) resolveNamedType(tr *ast.TypeRef) (typesys.TypeID, bool) {
	if len(tr.Path) == 0 {
		return typesys.NoTypeID, false
	}
	if len(tr.Path) == 1 {
		if id, ok := b.resolveBuiltinName(tr.Path[0]); ok {
			return id, true
		}
	}
	name := tr.Path[len(tr.Path)-1]
	global := b.table.Scope(b.table.GlobalScope)
	if global == nil {
		return typesys.NoTypeID, false
	}
	for _, id := range global.NameIndex[name] {
		d := b.table.Decl(id)
		if d == nil {
			continue
		}
		switch d.Kind {
		case decl.KindClass:
			return b.types.Intern(typesys.MakeClass(typesys.DeclRef(id))), true
		case decl.KindEnum:
			ed := b.table.Enums.Get(d.Payload)
			if ed == nil {
				continue
			}
			return b.types.Intern(typesys.MakeEnum(typesys.DeclRef(id), ed.Underlying)), true
		case decl.KindTypeAlias:
			ad := b.table.TypeAliases.Get(d.Payload)
			if ad == nil {
				continue
			}
			return ad.Aliased, true
		}
	}
	return typesys.NoTypeID, false
}

func (b *funcBuilder) resolveBuiltinName(id source.StringID) (typesys.TypeID, bool) {
	name, ok := b.strings.Lookup(id)
	if !ok {
		return typesys.NoTypeID, false
	}
	bi := b.types.Builtins()
	switch name {
	case "void":
		return bi.Void, true
	case "bool":
		return bi.Bool, true
	case "char":
		return bi.Char, true
	case "int":
		return bi.Int, true
	case "long":
		return bi.Long, true
	case "float":
		return bi.Float, true
	case "double":
		return bi.Double, true
	default:
		return typesys.NoTypeID, false
	}
}
