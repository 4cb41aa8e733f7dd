// Package testkit collects cross-component invariant checks for
// internal/layout, internal/template, and internal/typesys: layout
// memoization, instantiation sharing, and canonical interning. No test in
// this module calls them.
package testkit

import (
	"fmt"

	"cppmir/internal/decl"
	"cppmir/internal/layout"
	"cppmir/internal/template"
	"cppmir/internal/typesys"
)

// CheckLayoutMemoized asserts that repeated LayoutOf queries for the same
// class return identical results, the invariant §8 states for component F:
// "For any class C: layout(C) is computed at most once; repeated queries
// return identical results."
func CheckLayoutMemoized(e *layout.Engine, class decl.DeclID) error {
	first, err := e.LayoutOf(class)
	if err != nil {
		return fmt.Errorf("first LayoutOf(%d) failed: %w", class, err)
	}
	second, err := e.LayoutOf(class)
	if err != nil {
		return fmt.Errorf("second LayoutOf(%d) failed: %w", class, err)
	}
	if first.Size != second.Size || first.Align != second.Align {
		return fmt.Errorf("layout(%d) is not stable across queries: %+v vs %+v", class, first, second)
	}
	if len(first.VTable.Entries) != len(second.VTable.Entries) {
		return fmt.Errorf("layout(%d) vtable is not stable across queries", class)
	}
	return nil
}

// CheckInstantiationShared asserts that instantiating the same template
// with the same binding twice yields the same Decl handle, the invariant
// §8 states for component E.
func CheckInstantiationShared(e *template.Engine, tmpl decl.DeclID, binding template.Binding) error {
	first, ok := e.Instantiate(tmpl, binding)
	if !ok {
		return fmt.Errorf("first Instantiate(%d) failed", tmpl)
	}
	second, ok := e.Instantiate(tmpl, binding)
	if !ok {
		return fmt.Errorf("second Instantiate(%d) failed", tmpl)
	}
	if first != second {
		return fmt.Errorf("instantiate(%d, binding) is not shared: %d vs %d", tmpl, first, second)
	}
	return nil
}

// CheckCanonicalIff asserts the type-system invariant §8 requires: two
// types intern to the same TypeID iff they are structurally identical
// (Intern is idempotent, and distinct descriptors never collide).
func CheckCanonicalIff(in *typesys.Interner, a, b typesys.Type) error {
	idA := in.Intern(a)
	idB := in.Intern(b)
	same := a == b
	if same != (idA == idB) {
		return fmt.Errorf("canonicalisation disagrees with structural equality: %+v vs %+v -> %d, %d", a, b, idA, idB)
	}
	if in.Intern(a) != idA {
		return fmt.Errorf("Intern(%+v) is not idempotent: %d then %d", a, idA, in.Intern(a))
	}
	return nil
}
