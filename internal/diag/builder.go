package diag

import "cppmir/internal/source"

// New builds a Diagnostic directly, without going through a Reporter.
// Components typically prefer ReportError/ReportWarning/ReportInfo so
// emission is decoupled from construction; New is for tests and golden
// fixtures that need a bare value.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Notes:    nil,
		Fixes:    nil,
	}
}

// NewError is a shortcut for New(SevError, ...).
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewFatal is a shortcut for New(SevFatal, ...).
func NewFatal(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevFatal, code, primary, msg)
}

// WithNote returns d with an additional secondary span/message attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns d with a fix made of the given edits attached.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// WithFixSuggestion returns d with an already-built Fix attached.
func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
