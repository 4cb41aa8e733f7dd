// Package template implements template instantiation (component E):
// argument deduction, substitution of a fresh Decl from a template's
// Entity, and requires-clause / concept checking. It is grounded on
// internal/decl's TemplateData/TemplateTypeParameterData/ConceptData and
// hands its output to internal/overload as Candidate values with
// FromTemplate set — this package never ranks or picks among candidates
// itself, only produces the ones templates contribute.
//
// Substitution is structural rewriting, never mutation of the template
// itself: instantiate.go always allocates a fresh Decl, matching §9's
// "the original template is immutable" design note. The (Template,
// Binding) -> Decl map memoises results so that two call sites deducing
// the same binding share one instantiated Decl.
package template
