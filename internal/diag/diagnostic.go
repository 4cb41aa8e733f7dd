package diag

import (
	"cppmir/internal/source"
)

// Note is a secondary span/message attached to a Diagnostic, e.g. pointing
// at the conflicting declaration in a redefinition error.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement. NewText replaces the bytes covered
// by Span.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a candidate automated correction made of one or more edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is the unit of output for every component: lookup failures,
// type errors, overload resolution failures, template instantiation
// failures, layout errors, and lowering rejections all produce Diagnostic
// values through a Reporter.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
