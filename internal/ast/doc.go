// Package ast defines the narrow, visitor-driven tree the core consumes
// from an external Clang-based AST producer (out of scope for this
// module). It is not a parser: nodes are constructed by the producer (or,
// in tests, by Tree's New* constructors) and never re-derived from source text.
//
// Every node category named by the external interface has a home here:
// the translation-unit root, namespace-def, class-def (with base
// specifiers, members, access levels, and a polymorphic flag),
// function-decl/def, template-decl, concept-decl, using-declaration,
// using-directive, statement kinds, and expression kinds. Each node
// carries a source.Span.
//
// Nodes live in per-kind arenas (internal/arena) addressed by opaque IDs,
// mirroring the arena-of-payloads idiom used throughout this module:
// a small tagged Item/Stmt/Expr record holds the Kind and Span, and a
// PayloadID indexes into the kind-specific arena holding the rest.
package ast
