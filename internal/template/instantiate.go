package template

import (
	"cppmir/internal/decl"
)

// Instantiate produces the Decl that results from applying binding to
// tmplID's parameters, creating it on first request and returning the
// memoised Decl on every subsequent request for the same (Template,
// Binding) pair — the sharing invariant §9 requires. It returns false
// when the requires-clause rejects the binding (SFINAE: no diagnostic,
// the caller simply excludes this candidate) or when substitution itself
// cannot produce a Decl (reported as TemplateSubstitutionFailure).
func (e *Engine) Instantiate(tmplID decl.DeclID, binding Binding) (decl.DeclID, bool) {
	tmpl, ok := e.table.Template(tmplID)
	if !ok || len(binding) != len(tmpl.Params) {
		return decl.NoDeclID, false
	}

	key := cacheKey{Template: tmplID, Binding: binding.key()}
	if id, ok := e.cache[key]; ok {
		return id, true
	}

	if !e.satisfies(tmpl.RequiresClause, tmpl.Params, binding) {
		return decl.NoDeclID, false
	}

	if e.stack[tmplID] >= maxInstantiationDepth {
		e.reportRecursive(tmplID)
		return decl.NoDeclID, false
	}
	e.stack[tmplID]++
	defer func() { e.stack[tmplID]-- }()

	entity := e.table.Decl(tmpl.Entity)
	if entity == nil {
		e.reportSubstitutionFailure(tmplID)
		return decl.NoDeclID, false
	}

	var out decl.DeclID
	switch entity.Kind {
	case decl.KindFunction:
		out, ok = e.instantiateFunction(tmpl.Entity, entity, binding)
	case decl.KindClass:
		out, ok = e.instantiateClass(tmpl.Entity, entity, binding)
	default:
		ok = false
	}
	if !ok {
		e.reportSubstitutionFailure(tmplID)
		return decl.NoDeclID, false
	}

	e.cache[key] = out
	e.origin[out] = instantiationRecord{Template: tmplID, Binding: append(Binding(nil), binding...)}
	return out, true
}

// Provenance reports the template and argument binding that produced id
// through Instantiate, so a caller outside this package (the mangler,
// encoding "template instantiations include their canonical binding" per
// §4.H) can recover the binding without re-deriving it from id's own
// already-substituted signature. ok is false for any decl that is not
// itself the result of an instantiation.
func (e *Engine) Provenance(id decl.DeclID) (decl.DeclID, Binding, bool) {
	rec, ok := e.origin[id]
	if !ok {
		return decl.NoDeclID, nil, false
	}
	return rec.Template, rec.Binding, true
}

func (e *Engine) instantiateFunction(entityID decl.DeclID, entity *decl.Decl, binding Binding) (decl.DeclID, bool) {
	fd, ok := e.table.Function(entityID)
	if !ok {
		return decl.NoDeclID, false
	}
	newParams := make([]decl.ParamData, len(fd.Params))
	for i, p := range fd.Params {
		newParams[i] = decl.ParamData{
			Name:    p.Name,
			Type:    substituteType(e.types, binding, p.Type),
			Default: p.Default,
		}
	}
	data := decl.FunctionData{
		Role:        fd.Role,
		OwningClass: fd.OwningClass,
		Params:      newParams,
		ReturnType:  substituteType(e.types, binding, fd.ReturnType),
		IsVirtual:   fd.IsVirtual,
		IsPure:      fd.IsPure,
		IsStatic:    fd.IsStatic,
		IsConst:     fd.IsConst,
		IsVariadic:  fd.IsVariadic,
		IsDeleted:   fd.IsDeleted,
		Origin:      fd.Origin,
	}
	return e.table.NewFunction(entity.Name, entity.Parent, entity.Span, data), true
}

// instantiateClass substitutes a class template's field and method types,
// producing a fresh class whose members are freshly-allocated decls of
// their own. Base classes are carried over unsubstituted: a base that is
// itself dependent on the template's parameters (`Derived<T> : Base<T>`)
// would need its own nested instantiation, which the corpus this system
// targets does not exercise for class templates.
func (e *Engine) instantiateClass(entityID decl.DeclID, entity *decl.Decl, binding Binding) (decl.DeclID, bool) {
	cd, ok := e.table.Class(entityID)
	if !ok {
		return decl.NoDeclID, false
	}

	newID, newScope := e.table.NewClass(entity.Name, entity.Parent, entity.Span, entity.Origin, cd.IsUnion)
	newCD, _ := e.table.Class(newID)
	newCD.Bases = append([]decl.BaseSpec(nil), cd.Bases...)
	newCD.IsPolymorphic = cd.IsPolymorphic
	newCD.IsAbstract = cd.IsAbstract

	scope := e.table.Scope(newScope)
	members := make([]decl.DeclID, 0, len(cd.Members))
	for _, m := range cd.Members {
		fresh, ok := e.instantiateMember(m, newID, newScope, binding)
		if !ok {
			continue
		}
		members = append(members, fresh)
		if scope != nil {
			if fd := e.table.Decl(fresh); fd != nil {
				scope.Decls = append(scope.Decls, fresh)
				scope.NameIndex[fd.Name] = append(scope.NameIndex[fd.Name], fresh)
			}
		}
	}
	newCD.Members = members
	return newID, true
}

func (e *Engine) instantiateMember(m decl.DeclID, owner decl.DeclID, ownerScope decl.ScopeID, binding Binding) (decl.DeclID, bool) {
	md := e.table.Decl(m)
	if md == nil {
		return decl.NoDeclID, false
	}
	switch md.Kind {
	case decl.KindVariable:
		vd, ok := e.table.Variable(m)
		if !ok {
			return decl.NoDeclID, false
		}
		data := decl.VariableData{
			Role:        vd.Role,
			Type:        substituteType(e.types, binding, vd.Type),
			OwningClass: owner,
			IsConst:     vd.IsConst,
		}
		return e.table.NewVariable(md.Name, ownerScope, md.Span, data), true
	case decl.KindFunction:
		fd, ok := e.table.Function(m)
		if !ok {
			return decl.NoDeclID, false
		}
		newParams := make([]decl.ParamData, len(fd.Params))
		for i, p := range fd.Params {
			newParams[i] = decl.ParamData{
				Name:    p.Name,
				Type:    substituteType(e.types, binding, p.Type),
				Default: p.Default,
			}
		}
		data := decl.FunctionData{
			Role:        fd.Role,
			OwningClass: owner,
			Params:      newParams,
			ReturnType:  substituteType(e.types, binding, fd.ReturnType),
			IsVirtual:   fd.IsVirtual,
			IsPure:      fd.IsPure,
			IsStatic:    fd.IsStatic,
			IsConst:     fd.IsConst,
			IsVariadic:  fd.IsVariadic,
			IsDeleted:   fd.IsDeleted,
			Origin:      fd.Origin,
		}
		return e.table.NewFunction(md.Name, ownerScope, md.Span, data), true
	default:
		return decl.NoDeclID, false
	}
}
