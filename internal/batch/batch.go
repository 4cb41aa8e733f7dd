// Package batch dispatches independent translation units across a bounded
// worker pool (§5: "independent translation units share no mutable state
// and may be lowered in parallel"). It is grounded on the teacher's own
// `internal/driver/parallel.go` — `TokenizeDir`/`ParseDir`'s
// errgroup-with-a-concurrency-limit-and-pre-sized-result-slice shape —
// adapted from tokenizing/parsing files on disk to lowering already
// consumed ASTs through component G.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	cppctx "cppmir/internal/context"
	"cppmir/internal/ast"
	"cppmir/internal/diag"
	"cppmir/internal/mir"
	"cppmir/internal/source"
)

// Unit is one translation unit's input: its consumed AST plus the options
// its context.TU should be built with. Populate, if set, runs once the TU
// is constructed and before lowering starts — the seam where a real AST
// producer (§6.1) would walk Tree and fill in Table's decls; cmd/cppmirc's
// fixture producer uses it since this module has no Clang front end of
// its own.
type Unit struct {
	Name     string
	Tree     *ast.Tree
	Strings  *source.Interner // nil gets each unit its own fresh interner
	Options  cppctx.Options
	Populate func(*cppctx.TU)
}

// Result is one unit's lowered output, carrying its own TU (so a caller
// can still inspect the decl table or layout engine afterward) and
// diagnostic bag.
type Result struct {
	Name      string
	TU        *cppctx.TU
	Functions []*mir.Function
	Bag       *diag.Bag
}

// LowerAll runs cppctx.New followed by TU.LowerAll for every unit
// concurrently, capped at jobs goroutines (GOMAXPROCS(0) if jobs<=0),
// exactly the concurrency policy `internal/driver.TokenizeDir` uses.
// Results land at each unit's own index, so no mutex guards `results`
// the same way the teacher's own comment notes ("индексы уникальны для
// каждой горутины, мьютекс не нужен"). If ctx is canceled, LowerAll
// returns the partial results gathered so far alongside the context's
// error. A panic inside a unit's lowering is not recovered and is not
// turned into an error.
func LowerAll(ctx context.Context, units []Unit, jobs int) ([]Result, error) {
	if len(units) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))

	for i, u := range units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			tu := cppctx.New(u.Strings, u.Tree, u.Options)
			if u.Populate != nil {
				u.Populate(tu)
			}
			results[i] = Result{
				Name:      u.Name,
				TU:        tu,
				Functions: tu.LowerAll(),
				Bag:       tu.Diags,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
