// Package diag defines the diagnostic model shared by every translator
// component (lookup, typing, overload resolution, templates, layout,
// lowering, mangling).
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced while resolving names, checking types, selecting
//     overloads, instantiating templates, computing layouts, and lowering
//     to MIR.
//   - Offer light-weight utilities (Reporter, Bag) that let components
//     emit diagnostics without coupling to concrete storage or formatting.
//   - Model fix suggestions as structured edits a driver can materialise.
//
// # Scope
//
// Package diag defines the shape of a diagnostic and how components report
// one, and also holds its renderers: render.go writes a Bag to an
// io.Writer for a terminal, and golden.go produces the plain-text form the
// golden tests compare. It has no CLI integration; cmd/cppmirc calls it.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error, or Fatal (severity.go).
//   - Code – compact numeric identifier with a stable string form
//     (codes.go), grouped by phase: lookup, typing, overload, template,
//     layout, lowering, mangling, host.
//   - Message – short, actionable text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing a correction.
//
// Notes should be used sparingly: each note must add context (e.g.
// "candidate declared here") rather than repeating the message.
//
// # Emitting diagnostics
//
// Components use a Reporter to decouple emission from storage. Construct
// a ReportBuilder via ReportError/ReportWarning/ReportInfo, chain WithNote
// as needed, and call Emit exactly once. diag.BagReporter aggregates
// diagnostics into a Bag, which supports Sort and Dedup for deterministic
// output; DedupReporter filters duplicates at emission time instead.
//
// # Consumers
//
//   - internal/context: owns one Bag per translation unit.
//   - internal/batch: keeps each TU's own Bag in its Result across a
//     parallel driver run; the bags are not merged.
//   - cmd/cppmirc: renders a Bag to the terminal.
package diag
