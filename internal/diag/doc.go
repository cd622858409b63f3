// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (LEX1001, SYN2001).
//     The numeric range encodes the phase: 1xxx lexer, 2xxx syntax, 3xxx eval, 4xxx io.
//   - Message – short human text.
//   - Primary – the source.Span the message points at.
//   - Notes – optional secondary spans, used by the parser to describe the
//     construct that contained a failed operand ("bad operand for unary '-'").
//
// # Flow
//
// Producers push diagnostics into a Reporter. BagReporter stores them in a
// Bag, which enforces an upper bound; PhaseReporter keeps lexical and syntax
// diagnostics in separate bags. Diagnostics are plain data and never used for
// control flow.
//
// Rendering lives in internal/diagfmt; FormatShortDiagnostics is the only
// formatter kept here since tests and the CLI share it.
package diag
