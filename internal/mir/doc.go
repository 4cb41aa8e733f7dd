// Package mir implements the MIR builder (component G): it lowers a
// function body from the resolved AST into a control-flow graph of basic
// blocks, each holding a straight-line sequence of statements and ending
// in exactly one terminator. It is the last component in the pipeline —
// name lookup (internal/scope), typing (internal/typesys), overload
// resolution (internal/overload), template instantiation
// (internal/template), and class layout (internal/layout) have already
// run by the time a function reaches LowerFunction.
//
// The builder owns a small, deliberately narrow type-reference resolver
// (resolveTypeRef in resolve_type.go) for local variable declarations: no
// other component yet resolves an arbitrary ast.TypeRefID written at an
// arbitrary program point to a canonical typesys.TypeID, so lowering
// cannot simply ask one for a local's type. It handles the named-builtin
// and named-class cases the corpus exercises and falls back to reporting
// LoweringUnsupportedConstruct, the same scoping discipline
// internal/template's requires-clause evaluator already uses for the
// narrower problem of resolving a template parameter's own name.
package mir
