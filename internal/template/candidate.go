package template

import (
	"cppmir/internal/decl"
	"cppmir/internal/overload"
	"cppmir/internal/typesys"
)

// Resolve deduces a binding for tmplID against argTypes, checks its
// requires-clause, and instantiates it, returning an overload.Candidate
// ready to be ranked alongside any non-template candidates for the same
// call. It reports nothing itself on deduction/constraint failure: per
// §4.E a failed deduction or requires-clause silently removes the
// candidate rather than producing a diagnostic — the caller only sees a
// missing candidate, exactly like an ordinary viability failure.
//
// Specificity is always 0: this engine does not implement partial
// specialization ordering, so every function template instantiated here
// is a primary template and ties against every other on that axis; the
// tie then falls to overload's non-variadic-over-variadic rule.
func (e *Engine) Resolve(tmplID decl.DeclID, argTypes []typesys.TypeID) (overload.Candidate, bool) {
	tmpl, ok := e.table.Template(tmplID)
	if !ok {
		return overload.Candidate{}, false
	}
	binding, ok := Deduce(e.table, e.types, tmpl, argTypes)
	if !ok {
		return overload.Candidate{}, false
	}
	instantiated, ok := e.Instantiate(tmplID, binding)
	if !ok {
		return overload.Candidate{}, false
	}
	return overload.Candidate{Decl: instantiated, FromTemplate: true, Specificity: 0}, true
}
