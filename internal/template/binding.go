package template

import (
	"strconv"
	"strings"

	"cppmir/internal/typesys"
)

// Binding maps each of a template's parameters, by index, to the concrete
// type it was deduced or explicitly given as. len(Binding) always equals
// len(TemplateData.Params) for a fully-bound instantiation.
type Binding []typesys.TypeID

// key returns a string uniquely identifying b for memoisation. TypeIDs are
// already canonical (typesys hash-conses), so a plain join is enough.
func (b Binding) key() string {
	var s strings.Builder
	for i, id := range b {
		if i > 0 {
			s.WriteByte(',')
		}
		s.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return s.String()
}
