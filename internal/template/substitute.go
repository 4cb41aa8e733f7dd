package template

import "cppmir/internal/typesys"

// substituteType structurally rewrites a type interned against the
// template's own scope (where template type parameters appear as
// KindTemplateTypeParameter descriptors) into the concrete type binding
// gives that parameter, recursing through pointers, references, and
// arrays. Types that don't mention any template parameter round-trip
// unchanged (Intern re-hash-conses to the same TypeID it started as).
func substituteType(types *typesys.Interner, binding Binding, id typesys.TypeID) typesys.TypeID {
	if id == typesys.NoTypeID {
		return id
	}
	t, ok := types.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case typesys.KindTemplateTypeParameter:
		if t.ParamIndex >= 0 && t.ParamIndex < len(binding) {
			return binding[t.ParamIndex]
		}
		return id
	case typesys.KindPointer:
		elem := substituteType(types, binding, t.Elem)
		if elem == t.Elem {
			return id
		}
		return types.Intern(typesys.MakePointer(elem, t.Const, t.Volatile))
	case typesys.KindReference:
		elem := substituteType(types, binding, t.Elem)
		if elem == t.Elem {
			return id
		}
		return types.Intern(typesys.MakeReference(elem, t.RValue))
	case typesys.KindArray:
		elem := substituteType(types, binding, t.Elem)
		if elem == t.Elem {
			return id
		}
		if t.ArrayUnknownLen {
			return types.Intern(typesys.MakeUnknownBoundArray(elem))
		}
		return types.Intern(typesys.MakeArray(elem, t.ArrayLen))
	case typesys.KindFunction:
		params, ret, variadic, ok := types.Signature(t.Payload)
		if !ok {
			return id
		}
		changed := false
		newParams := make([]typesys.TypeID, len(params))
		for i, p := range params {
			newParams[i] = substituteType(types, binding, p)
			if newParams[i] != p {
				changed = true
			}
		}
		newRet := substituteType(types, binding, ret)
		if newRet != ret {
			changed = true
		}
		if !changed {
			return id
		}
		return types.InternFunction(newParams, newRet, variadic)
	default:
		return id
	}
}
