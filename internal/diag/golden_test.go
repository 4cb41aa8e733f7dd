package diag

import (
	"testing"

	"cppmir/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()

	primary := fs.AddVirtual("sample.cpp", []byte("a\nb\n"))
	header := fs.AddVirtual("vector.h", []byte("x\n"))

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     TypingTypeMismatch,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: primary, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: header, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: primary, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     LookupNameAmbiguous,
			Message:  "another",
			Primary:  source.Span{File: primary, Start: 2, End: 3},
		},
	}

	expected := "error TYP2001 sample.cpp:1:1 first line second\n" +
		"note TYP2001 sample.cpp:2:1 note line\n" +
		"warning LKP1002 sample.cpp:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
