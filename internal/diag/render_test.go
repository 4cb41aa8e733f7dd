package diag

import (
	"strings"
	"testing"

	"cppmir/internal/source"
)

func TestRenderIncludesLocationAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("widget.cpp", []byte("int x = y;\n"))

	d := Diagnostic{
		Severity: SevError,
		Code:     LookupNameNotFound,
		Message:  "undeclared identifier 'y'",
		Primary:  source.Span{File: file, Start: 8, End: 9},
	}

	var buf strings.Builder
	Render(&buf, d, fs, false)
	out := buf.String()

	if !strings.Contains(out, "undeclared identifier 'y'") {
		t.Fatalf("Render output missing message:\n%s", out)
	}
	if !strings.Contains(out, "widget.cpp:1:9") {
		t.Fatalf("Render output missing location:\n%s", out)
	}
	if !strings.Contains(out, "int x = y;") {
		t.Fatalf("Render output missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("Render output missing caret:\n%s", out)
	}
}

func TestUnderlineForDoublesWidthOfFullwidthRunes(t *testing.T) {
	// U+FF21 FULLWIDTH LATIN CAPITAL LETTER A occupies two terminal cells
	// but three UTF-8 bytes; startCol/spanBytes are byte offsets, matching
	// source.Span, so 'x' starts at byte column 4.
	line := "Ａx"
	got := underlineFor(line, 4, 1)
	want := "  ^"
	if got != want {
		t.Fatalf("underlineFor(%q, 4, 1) = %q, want %q", line, got, want)
	}
}

func TestRenderSkipsSpanWithNoFileSet(t *testing.T) {
	d := Diagnostic{Severity: SevInfo, Code: UnknownCode, Message: "no source available"}

	var buf strings.Builder
	Render(&buf, d, nil, false)
	if !strings.Contains(buf.String(), "no source available") {
		t.Fatalf("Render dropped the message when fs is nil: %q", buf.String())
	}
}
