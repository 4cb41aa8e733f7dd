package decl

// DeclID identifies a decl in a Table's arena.
type DeclID uint32

// NoDeclID marks the absence of a decl reference.
const NoDeclID DeclID = 0

// IsValid reports whether id refers to an allocated decl.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// ScopeID identifies a scope in a Table's arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether id refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }
