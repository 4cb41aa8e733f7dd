package mirser

import (
	"path/filepath"
	"testing"

	"cppmir/internal/decl"
	"cppmir/internal/mir"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

func sampleModule() Module {
	fn := &mir.Function{
		Decl:       decl.DeclID(1),
		Name:       source.StringID(1),
		Symbol:     "_Z7examplei",
		ParamCount: 1,
		ReturnType: typesys.TypeID(2),
		Locals: []mir.Local{
			{Type: typesys.TypeID(2)},
			{Type: typesys.TypeID(2), Name: source.StringID(2)},
		},
		Blocks: []mir.Block{
			{
				ID: 0,
				Statements: []mir.Statement{
					mir.AssignOf(mir.Place{Root: 0}, mir.Rvalue{}),
				},
				Term: mir.Terminator{Kind: mir.TermReturn, Return: mir.ReturnTerm{HasValue: true}},
			},
		},
		Entry: 0,
	}
	return NewModule("example.cpp", []*mir.Function{fn})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleModule()

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.Name != want.Name {
		t.Fatalf("Name = %q, want %q", got.Name, want.Name)
	}
	if len(got.Functions) != 1 {
		t.Fatalf("Functions = %d, want 1", len(got.Functions))
	}
	if got.Functions[0].Symbol != want.Functions[0].Symbol {
		t.Fatalf("Symbol = %q, want %q", got.Functions[0].Symbol, want.Functions[0].Symbol)
	}
	if len(got.Functions[0].Blocks) != 1 || got.Functions[0].Blocks[0].Term.Kind != mir.TermReturn {
		t.Fatalf("Blocks did not round-trip: %+v", got.Functions[0].Blocks)
	}
}

func TestWriteFileThenReadFileRoundTrip(t *testing.T) {
	m := sampleModule()
	path := filepath.Join(t.TempDir(), "example.mp")

	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got.Name != m.Name || len(got.Functions) != len(m.Functions) {
		t.Fatalf("ReadFile(WriteFile(m)) = %+v, want %+v", got, m)
	}
}

func TestDecodeRejectsUnknownSchema(t *testing.T) {
	m := sampleModule()
	m.Schema = schemaVersion + 1

	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatalf("Decode accepted a future schema version")
	}
}
