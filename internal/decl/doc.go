// Package decl implements the canonical decl model (component A):
// namespaces, classes, enums, type aliases, functions, variables,
// templates, template type parameters, concepts, and using-
// declarations/directives, each addressed by a stable opaque handle so
// cyclic references (a class referring to a method whose body references
// the class) are representable without recursive ownership.
//
// Decls are not mutated after their structural fields are set at
// creation. Late-bound data — a function's lowered body, a class's
// layout, a template's instantiation cache entry — occupies dedicated
// slots that transition from unset to set exactly once; AttachBody and
// AttachLayout enforce that transition and panic on a second attempt,
// since a second attempt can only mean a caller mis-sequenced its own
// pipeline.
package decl
