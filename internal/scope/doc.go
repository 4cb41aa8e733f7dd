// Package scope implements the name resolver (component B): unqualified
// lookup, qualified (A::B::x) lookup, base-class lookup with virtual-base
// flattening, using-declarations/directives, and argument-dependent lookup.
// It operates on the Scope/Decl data internal/decl defines rather than
// owning that data itself, the same way the resolver behavior and the
// symbol/scope data it walks are split in the pattern this package
// generalises from a single-package original into a data/behavior split
// that matches this system's component boundaries.
package scope
