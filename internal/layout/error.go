package layout

import (
	"fmt"
	"strings"

	"cppmir/internal/decl"
)

// ErrorKind enumerates the ways computing a class's layout can fail.
type ErrorKind uint8

const (
	ErrCircularBase ErrorKind = iota + 1
	ErrInvalidVirtualBase
	ErrAmbiguousBase
	ErrFieldOverflow
)

// Error reports a layout failure, carrying enough of the offending class
// chain to render a useful diagnostic note.
type Error struct {
	Kind  ErrorKind
	Class decl.DeclID
	Cycle []decl.DeclID
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrCircularBase:
		if len(e.Cycle) == 0 {
			return fmt.Sprintf("class#%d has a circular base list", e.Class)
		}
		parts := make([]string, 0, len(e.Cycle))
		for _, id := range e.Cycle {
			parts = append(parts, fmt.Sprintf("class#%d", id))
		}
		return fmt.Sprintf("circular base list: %s", strings.Join(parts, " -> "))
	case ErrInvalidVirtualBase:
		return fmt.Sprintf("class#%d has an invalid virtual base", e.Class)
	case ErrAmbiguousBase:
		return fmt.Sprintf("class#%d has an ambiguous base subobject", e.Class)
	case ErrFieldOverflow:
		return fmt.Sprintf("class#%d layout exceeds the addressable size", e.Class)
	default:
		return fmt.Sprintf("layout error kind=%d class#%d", e.Kind, e.Class)
	}
}
