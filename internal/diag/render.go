package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"cppmir/internal/source"
)

var (
	sevErrorColor   = color.New(color.FgRed, color.Bold)
	sevWarningColor = color.New(color.FgYellow, color.Bold)
	sevInfoColor    = color.New(color.FgCyan, color.Bold)
	sevFatalColor   = color.New(color.FgHiRed, color.Bold)
	caretColor      = color.New(color.FgGreen, color.Bold)
	locationColor   = color.New(color.FgHiBlack)
)

func severityColor(s Severity) *color.Color {
	switch s {
	case SevWarning:
		return sevWarningColor
	case SevError:
		return sevErrorColor
	case SevFatal:
		return sevFatalColor
	default:
		return sevInfoColor
	}
}

// Render writes d to out the way a terminal-facing driver would: a colored
// severity/code header, the file:line:col location, the offending source
// line, and a caret line underlining the span. colorize mirrors the
// teacher's own version banner, which colors unconditionally when the
// caller has already decided (via term.IsTerminal) that it should.
func Render(out io.Writer, d Diagnostic, fs *source.FileSet, colorize bool) {
	sevCol := severityColor(d.Severity)
	header := fmt.Sprintf("%s[%s]", d.Severity.String(), d.Code.String())
	if colorize {
		header = sevCol.Sprint(header)
	}
	fmt.Fprintf(out, "%s: %s\n", header, d.Message)

	renderSpan(out, fs, d.Primary, colorize)
	for _, n := range d.Notes {
		loc := "note"
		if colorize {
			loc = sevInfoColor.Sprint("note")
		}
		fmt.Fprintf(out, "  %s: %s\n", loc, n.Msg)
		renderSpan(out, fs, n.Span, colorize)
	}
	for _, fix := range d.Fixes {
		fmt.Fprintf(out, "  fix available: %s\n", fix.Title)
	}
}

func renderSpan(out io.Writer, fs *source.FileSet, span source.Span, colorize bool) {
	if fs == nil {
		return
	}
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	loc := fmt.Sprintf("  --> %s:%d:%d", f.Path, start.Line, start.Col)
	if colorize {
		loc = locationColor.Sprint(loc)
	}
	fmt.Fprintln(out, loc)

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(out, "  %s\n", line)

	underlineLen := span.Len()
	if start.Line != end.Line || underlineLen == 0 {
		underlineLen = 1
	}
	caret := underlineFor(line, start.Col, underlineLen)
	if colorize {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(out, "  %s\n", caret)
}

// underlineFor builds the "  ^~~~" caret line beneath line. startCol and
// spanBytes are the same byte-offset-based units as source.Span/LineCol,
// but the padding and marks are measured in display width: a fullwidth
// (East Asian) character occupies two terminal cells, so a span starting
// after one needs its leading padding doubled or the caret drifts left of
// the text it is meant to point at.
func underlineFor(line string, startCol uint32, spanBytes uint32) string {
	var b strings.Builder

	col := uint32(1)
	i := 0
	for col < startCol && i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if displayWidth(r) == 2 {
			b.WriteString("  ")
		} else {
			b.WriteByte(' ')
		}
		i += size
		col += uint32(size)
	}

	consumed := uint32(0)
	first := true
	for consumed < spanBytes && i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		mark := byte('~')
		if first {
			mark = '^'
			first = false
		}
		b.WriteByte(mark)
		if displayWidth(r) == 2 {
			b.WriteByte(mark)
		}
		i += size
		consumed += uint32(size)
	}
	if first {
		b.WriteByte('^')
	}
	return b.String()
}

// displayWidth reports 1 or 2 terminal cells for r, based on its Unicode
// East Asian Width property.
func displayWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
