package main

import (
	"testing"

	"cppmir/internal/ast"
	cppctx "cppmir/internal/context"
)

func TestBuildFixturePopulatesFunctionsAndClass(t *testing.T) {
	tree := ast.NewTree(16)
	tu := cppctx.New(nil, tree, cppctx.Options{})

	buildFixture(tree)(tu)

	fns := tu.Functions()
	if len(fns) != 3 {
		t.Fatalf("Functions() = %d, want 3 (add, greet, area)", len(fns))
	}

	lowered := tu.LowerAll()
	names := make(map[string]bool, len(lowered))
	for _, f := range lowered {
		names[tu.Strings.MustLookup(f.Name)] = true
		if f.Symbol == "" {
			t.Fatalf("lowered function has no mangled Symbol: %+v", f)
		}
	}
	for _, want := range []string{"add", "greet"} {
		if !names[want] {
			t.Fatalf("expected a lowered function named %q, got %v", want, names)
		}
	}

	var greet *string
	for _, f := range lowered {
		name := tu.Strings.MustLookup(f.Name)
		if name == "greet" {
			s := f.Symbol
			greet = &s
		}
	}
	if greet == nil || *greet != "greet" {
		t.Fatalf("extern \"C\" greet should mangle to its plain name, got %v", greet)
	}
}
