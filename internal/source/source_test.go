package source

import "testing"

func TestInternerDedups(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")
	if a != c {
		t.Fatalf("expected repeated intern of %q to reuse ID, got %d and %d", "foo", a, c)
	}
	if a == b {
		t.Fatalf("distinct strings must not share an ID")
	}
	if got := in.MustLookup(a); got != "foo" {
		t.Fatalf("MustLookup(%d) = %q, want foo", a, got)
	}
	if in.Has(StringID(999)) {
		t.Fatalf("Has should reject an out-of-range ID")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cpp", []byte("int main() {\n  return 0;\n}\n"))
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("Get(%d) = nil", id)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("AddVirtual should set FileVirtual")
	}

	// "return" begins at byte 15, on line 2, column 3.
	span := Span{File: id, Start: 15, End: 21}
	start, end := fs.Resolve(span)
	if start.Line != 2 || start.Col != 3 {
		t.Fatalf("start = %+v, want line 2 col 3", start)
	}
	if end.Line != 2 {
		t.Fatalf("end.Line = %d, want 2", end.Line)
	}

	if line := f.GetLine(2); line != "  return 0;" {
		t.Fatalf("GetLine(2) = %q", line)
	}
	if line := f.GetLine(99); line != "" {
		t.Fatalf("GetLine(99) = %q, want empty", line)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 8, End: 20}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %+v, want {5 20}", got)
	}

	other := Span{File: 2, Start: 0, End: 1}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files should be a no-op, got %+v", got)
	}
}
