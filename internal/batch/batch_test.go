package batch

import (
	"context"
	"testing"

	"cppmir/internal/ast"
	cppctx "cppmir/internal/context"
	"cppmir/internal/decl"
	"cppmir/internal/source"
)

func TestLowerAllProducesOneResultPerUnitInOrder(t *testing.T) {
	units := make([]Unit, 8)
	for i := range units {
		units[i] = Unit{Name: string(rune('a' + i)), Tree: ast.NewTree(4)}
	}

	results, err := LowerAll(context.Background(), units, 3)
	if err != nil {
		t.Fatalf("LowerAll failed: %v", err)
	}
	if len(results) != len(units) {
		t.Fatalf("LowerAll returned %d results, want %d", len(results), len(units))
	}
	for i, r := range results {
		if r.Name != units[i].Name {
			t.Fatalf("results[%d].Name = %q, want %q (results were not written to their reserved index)", i, r.Name, units[i].Name)
		}
		if r.TU == nil {
			t.Fatalf("results[%d].TU is nil", i)
		}
	}
}

func TestLowerAllEmptyInputIsNoop(t *testing.T) {
	results, err := LowerAll(context.Background(), nil, 4)
	if err != nil || results != nil {
		t.Fatalf("LowerAll(nil) = %v, %v; want nil, nil", results, err)
	}
}

func TestLowerAllRunsPopulateBeforeLowering(t *testing.T) {
	units := []Unit{
		{
			Name: "one-function",
			Tree: ast.NewTree(4),
			Populate: func(tu *cppctx.TU) {
				tu.Table.NewFunction(tu.Strings.Intern("f"), tu.Table.GlobalScope, source.Span{}, decl.FunctionData{
					Role: decl.RoleFree, ReturnType: tu.Types.Builtins().Void,
				})
			},
		},
		{Name: "empty", Tree: ast.NewTree(4)},
	}

	results, err := LowerAll(context.Background(), units, 2)
	if err != nil {
		t.Fatalf("LowerAll failed: %v", err)
	}
	if len(results[0].Functions) != 1 {
		t.Fatalf("results[0].Functions = %d, want 1 (Populate did not run before lowering)", len(results[0].Functions))
	}
	if len(results[1].Functions) != 0 {
		t.Fatalf("results[1].Functions = %d, want 0", len(results[1].Functions))
	}
}

func TestLowerAllRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := []Unit{{Name: "x", Tree: ast.NewTree(4)}}
	_, err := LowerAll(ctx, units, 1)
	if err == nil {
		t.Fatalf("expected LowerAll to observe the already-canceled context")
	}
}
