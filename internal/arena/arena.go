// Package arena provides a 1-based, growable slice arena shared by every
// component that needs stable opaque IDs into a per-translation-unit
// store: decls, types, MIR locals/blocks, and template instantiations
// all key off the same shape.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a slice-backed store returning 1-based indices as IDs so the
// zero value of the corresponding ID type can serve as a "not present"
// sentinel.
type Arena[T any] struct {
	data []T
}

// New creates an Arena whose backing slice is preallocated to capHint.
func New[T any](capHint int) *Arena[T] {
	if capHint < 0 {
		capHint = 0
	}
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	idx, err := safecast.Conv[uint32](len(a.data) + 1)
	if err != nil {
		panic(fmt.Errorf("arena: overflow allocating entry %d: %w", len(a.data)+1, err))
	}
	a.data = append(a.data, value)
	return idx
}

// Get returns a pointer to the entry at index, or nil if index is 0 or
// out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice returns the arena's contents in allocation order. The caller must
// not mutate structural fields the arena relies on for identity.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of allocated entries.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
