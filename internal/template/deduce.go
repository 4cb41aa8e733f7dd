package template

import (
	"cppmir/internal/decl"
	"cppmir/internal/typesys"
)

// Deduce infers a binding for tmpl's parameters from a call's argument
// types, matching each declared parameter type against the corresponding
// argument structurally (through pointers, references, and arrays) the
// way template argument deduction unifies a parameterised type with the
// argument's type. A parameter that no argument constrains falls back to
// its declared default; one with neither an occurrence nor a default, or
// two occurrences that disagree, makes deduction fail — per §9 conflicting
// deductions fail silently (SFINAE), not as a diagnostic.
func Deduce(table *decl.Table, types *typesys.Interner, tmpl *decl.TemplateData, argTypes []typesys.TypeID) (Binding, bool) {
	fd, ok := table.Function(tmpl.Entity)
	if !ok {
		return nil, false
	}
	binding := make(Binding, len(tmpl.Params))
	for i := range binding {
		binding[i] = typesys.NoTypeID
	}

	n := len(fd.Params)
	if n > len(argTypes) {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		if !unify(types, fd.Params[i].Type, argTypes[i], binding) {
			return nil, false
		}
	}

	for i, p := range tmpl.Params {
		if binding[i] != typesys.NoTypeID {
			continue
		}
		if p.Default == typesys.NoTypeID {
			return nil, false
		}
		binding[i] = p.Default
	}
	return binding, true
}

// unify matches a declared parameter type (possibly mentioning template
// type parameters) against a concrete argument type, filling binding as
// it goes. It returns false on a structural mismatch or a conflicting
// second deduction for the same parameter index.
func unify(types *typesys.Interner, declared, arg typesys.TypeID, binding Binding) bool {
	dt, ok := types.Lookup(declared)
	if !ok {
		return declared == arg
	}
	switch dt.Kind {
	case typesys.KindTemplateTypeParameter:
		idx := dt.ParamIndex
		if idx < 0 || idx >= len(binding) {
			return false
		}
		if binding[idx] == typesys.NoTypeID {
			binding[idx] = arg
			return true
		}
		return binding[idx] == arg
	case typesys.KindPointer:
		at, ok := types.Lookup(arg)
		if !ok || at.Kind != typesys.KindPointer {
			return false
		}
		return unify(types, dt.Elem, at.Elem, binding)
	case typesys.KindReference:
		at, ok := types.Lookup(arg)
		if ok && at.Kind == typesys.KindReference {
			return unify(types, dt.Elem, at.Elem, binding)
		}
		return unify(types, dt.Elem, arg, binding)
	case typesys.KindArray:
		at, ok := types.Lookup(arg)
		if !ok || at.Kind != typesys.KindArray {
			return false
		}
		return unify(types, dt.Elem, at.Elem, binding)
	default:
		return declared == arg
	}
}
