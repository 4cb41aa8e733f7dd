package overload

import "cppmir/internal/decl"

// Candidate wraps a function decl with the metadata overload resolution's
// tie-break rules need but which name lookup alone cannot supply: whether
// the function came from a template instantiation, and (only meaningful
// when it did) how specialised the template that produced it was.
type Candidate struct {
	Decl         decl.DeclID
	FromTemplate bool
	// Specificity orders template candidates when two are otherwise tied;
	// a higher value means a more specialised template per §4.D. Non-
	// template candidates ignore this field.
	Specificity int
}

// Candidates converts a plain decl ID slice (the common case: no template
// candidates in play) into a Candidate slice.
func Candidates(ids []decl.DeclID) []Candidate {
	out := make([]Candidate, len(ids))
	for i, id := range ids {
		out[i] = Candidate{Decl: id}
	}
	return out
}
