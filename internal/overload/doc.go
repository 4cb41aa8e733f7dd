// Package overload implements overload resolution and the standard
// conversion ranking that decides which of a call site's candidate
// functions is invoked (component D). It consumes a candidate set already
// assembled by internal/scope (unqualified lookup, ADL, base-class lookup)
// and, when template candidates are in the mix, already instantiated by
// internal/template — this package never resolves names or substitutes
// templates itself, only ranks and picks among finished function decls.
package overload
