// Package mangle implements component H: deterministic external symbol
// names for the decls component G and component F need to name at the MIR
// boundary (§4.H, §6.2). The scheme is Itanium-flavoured — a "_Z" sentinel,
// length-prefixed identifiers nested under N...E, and single-letter
// builtin-type codes — because that is the concrete C++ mangling grammar
// this system's downstream backend already expects to link against, not
// because this package tries to be a byte-exact Itanium implementation.
package mangle

import (
	"fmt"
	"strconv"
	"strings"

	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

// Mangler computes and caches symbol names for one translation unit's decl
// table, and doubles as the mangled-name index §8's round-trip property
// requires: mangle a decl, look it up by the returned string, get the same
// decl back.
type Mangler struct {
	table     *decl.Table
	types     *typesys.Interner
	templates *template.Engine // nil when the translation unit has no templates
	reporter  diag.Reporter

	names map[decl.DeclID]string
	index map[string]decl.DeclID
}

// New builds a Mangler over table/types, consulting templates (if non-nil)
// for the canonical binding of instantiated decls and reporting failures
// through reporter.
func New(table *decl.Table, types *typesys.Interner, templates *template.Engine, reporter diag.Reporter) *Mangler {
	return &Mangler{
		table:     table,
		types:     types,
		templates: templates,
		reporter:  reporter,
		names:     make(map[decl.DeclID]string, 64),
		index:     make(map[string]decl.DeclID, 64),
	}
}

// Mangle returns id's symbol name, computing it on first request and
// returning the cached value on every later call for the same id — the
// determinism §6.2 and §4.H both require. The name is also registered in
// the mangled-name index; a second, distinct decl that mangles to the same
// string reports MangleCollision instead of silently shadowing the first.
func (m *Mangler) Mangle(id decl.DeclID) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	name := m.mangle(id)
	m.names[id] = name
	if existing, ok := m.index[name]; ok && existing != id {
		m.reportCollision(id, existing, name)
	} else {
		m.index[name] = id
	}
	return name
}

// Lookup resolves a previously mangled name back to its decl. Only names
// returned by Mangle on this Mangler are found.
func (m *Mangler) Lookup(name string) (decl.DeclID, bool) {
	id, ok := m.index[name]
	return id, ok
}

func (m *Mangler) mangle(id decl.DeclID) string {
	d := m.table.Decl(id)
	if d == nil {
		return m.unsupported(id, "decl has no header")
	}
	switch d.Kind {
	case decl.KindFunction:
		return m.mangleFunction(id, d)
	case decl.KindVariable:
		return m.mangleVariable(id, d)
	default:
		return m.unsupported(id, fmt.Sprintf("%s decls have no externally visible symbol", d.Kind))
	}
}

// mangleFunction implements §4.H for KindFunction: a nested-name built from
// the enclosing namespace/class chain, the (possibly template-parameterised)
// unqualified name, and a parameter-type encoding that disambiguates
// overloads without needing the return type (C++ never overloads on return
// type alone).
func (m *Mangler) mangleFunction(id decl.DeclID, d *decl.Decl) string {
	fn, ok := m.table.Function(id)
	if !ok {
		return m.unsupported(id, "function payload missing")
	}
	if fn.Role == decl.RoleFree && d.Parent == m.table.GlobalScope && m.name(d.Name) == "main" {
		return "main"
	}
	// extern "C" linkage asks for a plain, unmangled symbol so it can be
	// called from C; §4.H's scheme only applies to C++-linkage decls.
	if fn.IsExternC {
		return m.name(d.Name)
	}

	var b strings.Builder
	b.WriteString("_Z")
	b.WriteString(m.encodeNestedName(id, d))
	if len(fn.Params) == 0 && !fn.IsVariadic {
		b.WriteString("v")
	} else {
		for _, p := range fn.Params {
			b.WriteString(m.encodeType(p.Type))
		}
		if fn.IsVariadic {
			b.WriteString("z")
		}
	}
	return b.String()
}

// mangleVariable mangles only variables with external linkage (globals);
// C++ never links a local, parameter, or field by symbol name, so those
// fall through to unsupported.
func (m *Mangler) mangleVariable(id decl.DeclID, d *decl.Decl) string {
	v, ok := m.table.Variable(id)
	if !ok || v.Role != decl.RoleGlobal {
		return m.unsupported(id, "only file-scope variables are mangled")
	}
	return "_Z" + m.encodeNestedName(id, d)
}

// encodeNestedName produces the shared "namespaces are encoded as
// length-prefixed identifiers concatenated" piece of §4.H: N + each
// enclosing namespace/class name, length-prefixed, outer to inner + the
// decl's own (possibly template-parameterised) name + E. A decl with no
// named enclosing scope (declared directly in the global namespace) skips
// the N...E wrapper entirely, matching real Itanium mangling's
// unqualified-name production.
func (m *Mangler) encodeNestedName(id decl.DeclID, d *decl.Decl) string {
	chain := m.enclosingNames(d)
	self := m.encodeIdentifier(d.Name) + m.encodeTemplateArgs(id)
	if len(chain) == 0 {
		return self
	}
	var b strings.Builder
	b.WriteString("N")
	for _, name := range chain {
		b.WriteString(m.encodeIdentifier(name))
	}
	b.WriteString(self)
	b.WriteString("E")
	return b.String()
}

// enclosingNames walks d's parent scope chain up to (but excluding) the
// global namespace, returning the named namespaces/classes it passes
// through in outer-to-inner order.
func (m *Mangler) enclosingNames(d *decl.Decl) []source.StringID {
	var chain []source.StringID
	scopeID := d.Parent
	for scopeID.IsValid() {
		s := m.table.Scope(scopeID)
		if s == nil {
			break
		}
		if s.Owner.IsValid() && s.Owner != m.table.GlobalNamespace {
			if owner := m.table.Decl(s.Owner); owner != nil && owner.Name != source.NoStringID {
				chain = append(chain, owner.Name)
			}
		}
		scopeID = s.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// encodeTemplateArgs implements the "template instantiations include their
// canonical binding" clause of §4.H: I + one encoded type per bound
// argument, in parameter order, + E. Non-instantiated decls (the common
// case) contribute nothing.
func (m *Mangler) encodeTemplateArgs(id decl.DeclID) string {
	if m.templates == nil {
		return ""
	}
	_, binding, ok := m.templates.Provenance(id)
	if !ok || len(binding) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("I")
	for _, arg := range binding {
		b.WriteString(m.encodeType(arg))
	}
	b.WriteString("E")
	return b.String()
}

func (m *Mangler) encodeIdentifier(name source.StringID) string {
	s := m.name(name)
	return strconv.Itoa(len(s)) + s
}

func (m *Mangler) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return m.table.Strings.MustLookup(id)
}

// encodeType recursively encodes a canonical type per §4.C's variant list.
// Two structurally distinct types always encode to distinct strings
// because typesys hash-conses: TypeIDs that would encode identically are
// already the same TypeID.
func (m *Mangler) encodeType(t typesys.TypeID) string {
	ty, ok := m.types.Lookup(t)
	if !ok {
		return "Du" // incomplete/unresolved: caught upstream by the type checker
	}

	// typesys.Type.WithCV documents Const/Volatile as top-level qualifiers
	// of ty itself, including for Pointer/Reference (a const pointer, not
	// a pointer-to-const — a pointer-to-const is a distinct Elem TypeID
	// with its own Const bit). So qualify(ty) prefixes the kind's own
	// letter uniformly; there is no separate pointee-qualifier case.
	switch ty.Kind {
	case typesys.KindVoid:
		return qualify(ty) + "v"
	case typesys.KindBool:
		return qualify(ty) + "b"
	case typesys.KindIntegral:
		return qualify(ty) + encodeIntegral(ty.Signed, ty.Width)
	case typesys.KindFloating:
		return qualify(ty) + encodeFloating(ty.Width)
	case typesys.KindPointer:
		return qualify(ty) + "P" + m.encodeType(ty.Elem)
	case typesys.KindReference:
		if ty.RValue {
			return qualify(ty) + "O" + m.encodeType(ty.Elem)
		}
		return qualify(ty) + "R" + m.encodeType(ty.Elem)
	case typesys.KindArray:
		if ty.ArrayUnknownLen {
			return qualify(ty) + "A_" + m.encodeType(ty.Elem)
		}
		return qualify(ty) + "A" + strconv.FormatUint(ty.ArrayLen, 10) + "_" + m.encodeType(ty.Elem)
	case typesys.KindFunction:
		return qualify(ty) + m.encodeFunctionType(ty.Payload)
	case typesys.KindClass, typesys.KindEnum:
		return qualify(ty) + m.encodeClassOrEnum(decl.DeclID(ty.Decl))
	case typesys.KindTemplateTypeParameter:
		return qualify(ty) + "T" + strconv.Itoa(ty.ParamIndex) + "_"
	case typesys.KindDependentName, typesys.KindUnresolvedOverloadSet:
		return qualify(ty) + "Dp" + m.name(ty.ParamName)
	default:
		return qualify(ty) + "Du"
	}
}

func qualify(ty typesys.Type) string {
	var q string
	if ty.Volatile {
		q += "V"
	}
	if ty.Const {
		q += "K"
	}
	return q
}

func (m *Mangler) encodeFunctionType(payload uint32) string {
	params, ret, variadic, ok := m.types.Signature(payload)
	if !ok {
		return "FvE"
	}
	var b strings.Builder
	b.WriteString("F")
	b.WriteString(m.encodeType(ret))
	if len(params) == 0 {
		b.WriteString("v")
	} else {
		for _, p := range params {
			b.WriteString(m.encodeType(p))
		}
	}
	if variadic {
		b.WriteString("z")
	}
	b.WriteString("E")
	return b.String()
}

func (m *Mangler) encodeClassOrEnum(id decl.DeclID) string {
	d := m.table.Decl(id)
	if d == nil {
		return "Du"
	}
	return m.encodeNestedName(id, d)
}

func encodeIntegral(signed bool, w typesys.Width) string {
	switch w {
	case typesys.Width8:
		if signed {
			return "c"
		}
		return "h"
	case typesys.Width16:
		if signed {
			return "s"
		}
		return "t"
	case typesys.Width64:
		if signed {
			return "l"
		}
		return "m"
	default: // Width32 and WidthUnspecified both mean "int"
		if signed {
			return "i"
		}
		return "j"
	}
}

func encodeFloating(w typesys.Width) string {
	if w == typesys.Width64 {
		return "d"
	}
	return "f"
}

func (m *Mangler) unsupported(id decl.DeclID, reason string) string {
	if m.reporter != nil {
		var span source.Span
		if d := m.table.Decl(id); d != nil {
			span = d.Span
		}
		diag.ReportError(m.reporter, diag.MangleUnsupportedSymbol, span, reason).Emit()
	}
	return "_Zu" + strconv.FormatUint(uint64(id), 10)
}

func (m *Mangler) reportCollision(id, existing decl.DeclID, name string) {
	if m.reporter == nil {
		return
	}
	var span source.Span
	if d := m.table.Decl(id); d != nil {
		span = d.Span
	}
	msg := fmt.Sprintf("decl#%d and decl#%d both mangle to %q", existing, id, name)
	diag.ReportError(m.reporter, diag.MangleCollision, span, msg).
		WithNote(span, "the second decl's mangled name is kept, but the index still resolves the name to the first").
		Emit()
}
