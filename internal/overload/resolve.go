package overload

import (
	"fmt"

	"cppmir/internal/ast"
	"cppmir/internal/decl"
	"cppmir/internal/diag"
	"cppmir/internal/source"
	"cppmir/internal/typesys"
)

// viable is a candidate paired with the per-argument conversion sequence
// its parameters admit for the call's actual argument types.
type viable struct {
	Candidate
	seqs []typesys.Sequence
}

// minRequired returns the number of leading parameters that are not
// defaulted; defaults are assumed trailing, as C++ requires.
func minRequired(params []decl.ParamData) int {
	for i, p := range params {
		if p.Default != ast.NoExprID {
			return i
		}
	}
	return len(params)
}

// viabilityOf reports whether fn (with the given parameter list) can be
// called with argTypes, and if so the per-argument conversion sequence
// each supplied argument requires.
func viabilityOf(types *typesys.Interner, params []decl.ParamData, variadic bool, argTypes []typesys.TypeID) ([]typesys.Sequence, bool) {
	if len(argTypes) < minRequired(params) {
		return nil, false
	}
	if len(argTypes) > len(params) && !variadic {
		return nil, false
	}
	seqs := make([]typesys.Sequence, len(argTypes))
	for i, at := range argTypes {
		if i >= len(params) {
			seqs[i] = typesys.Sequence{Rank: typesys.RankEllipsis}
			continue
		}
		seq, ok := types.IsConvertible(at, params[i].Type)
		if !ok {
			return nil, false
		}
		seqs[i] = seq
	}
	return seqs, true
}

// candidateBetter reports whether a's conversion sequence vector is no
// worse than b's in every position and strictly better in at least one,
// per §4.D's "better candidate" relation.
func candidateBetter(a, b []typesys.Sequence) bool {
	strictlyBetter := false
	for i := range a {
		if a[i].Rank > b[i].Rank {
			return false
		}
		if a[i].Rank < b[i].Rank {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// ResolveCall selects the best candidate for a call with the given
// argument types, applying §4.D's viability filter, per-argument
// conversion ranking, and tie-break sequence (non-template over template,
// more-specialised template over less, non-variadic over variadic).
func ResolveCall(table *decl.Table, types *typesys.Interner, candidates []Candidate, argTypes []typesys.TypeID, reporter diag.Reporter, span source.Span, name source.StringID) (decl.DeclID, bool) {
	var pool []viable
	for _, c := range candidates {
		fd, ok := table.Function(c.Decl)
		if !ok {
			continue
		}
		seqs, ok := viabilityOf(types, fd.Params, fd.IsVariadic, argTypes)
		if !ok {
			continue
		}
		pool = append(pool, viable{Candidate: c, seqs: seqs})
	}
	if len(pool) == 0 {
		reportNoMatch(table, reporter, name, span)
		return decl.NoDeclID, false
	}

	best := bestOf(pool)
	if len(best) > 1 {
		best = tieBreak(table, best)
	}
	if len(best) != 1 {
		reportAmbiguous(table, reporter, name, span, best)
		return decl.NoDeclID, false
	}

	winner := best[0].Decl
	if fd, ok := table.Function(winner); ok && fd.IsDeleted {
		reportDeleted(table, reporter, name, span)
		return decl.NoDeclID, false
	}
	return winner, true
}

// bestOf returns every candidate no other candidate is strictly better
// than. A single survivor is the winner; more than one means the tie-break
// rules or an ambiguity diagnostic decide.
func bestOf(pool []viable) []viable {
	var best []viable
	for _, v := range pool {
		beaten := false
		for _, other := range pool {
			if candidateBetter(other.seqs, v.seqs) {
				beaten = true
				break
			}
		}
		if !beaten {
			best = append(best, v)
		}
	}
	return best
}

// tieBreak narrows an equally-good candidate set using the non-conversion
// criteria §4.D lists in order: concrete functions beat template
// instantiations, more-specialised templates beat less-specialised ones,
// and non-variadic functions beat variadic ones.
func tieBreak(table *decl.Table, best []viable) []viable {
	if narrowed := filterViable(best, func(v viable) bool { return !v.FromTemplate }); len(narrowed) > 0 {
		best = narrowed
	}
	if len(best) > 1 {
		maxSpecificity := best[0].Specificity
		for _, v := range best[1:] {
			if v.Specificity > maxSpecificity {
				maxSpecificity = v.Specificity
			}
		}
		best = filterViable(best, func(v viable) bool { return v.Specificity == maxSpecificity })
	}
	if len(best) > 1 {
		if narrowed := filterViable(best, func(v viable) bool {
			fd, ok := table.Function(v.Decl)
			return ok && !fd.IsVariadic
		}); len(narrowed) > 0 {
			best = narrowed
		}
	}
	return best
}

func filterViable(in []viable, keep func(viable) bool) []viable {
	var out []viable
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func reportNoMatch(table *decl.Table, reporter diag.Reporter, name source.StringID, span source.Span) {
	if reporter == nil {
		return
	}
	msg := fmt.Sprintf("no matching function for call to '%s'", table.Strings.MustLookup(name))
	diag.ReportError(reporter, diag.OverloadNoMatchingFunction, span, msg).Emit()
}

func reportAmbiguous(table *decl.Table, reporter diag.Reporter, name source.StringID, span source.Span, tied []viable) {
	if reporter == nil {
		return
	}
	msg := fmt.Sprintf("call to '%s' is ambiguous", table.Strings.MustLookup(name))
	b := diag.ReportError(reporter, diag.OverloadAmbiguous, span, msg)
	for _, v := range tied {
		if d := table.Decl(v.Decl); d != nil {
			b = b.WithNote(d.Span, "candidate function")
		}
	}
	b.Emit()
}

func reportDeleted(table *decl.Table, reporter diag.Reporter, name source.StringID, span source.Span) {
	if reporter == nil {
		return
	}
	msg := fmt.Sprintf("call to deleted function '%s'", table.Strings.MustLookup(name))
	diag.ReportError(reporter, diag.OverloadDeletedFunction, span, msg).Emit()
}
