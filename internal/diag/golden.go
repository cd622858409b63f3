package diag

import (
	"fmt"
	"strings"

	"athena/internal/source"
)

// FormatShortDiagnostics renders one line per diagnostic:
//
//	ERROR SYN2001 path:line:col message
//
// Notes follow on their own lines prefixed with "  note:" when includeNotes is set.
// The order is the order of diags.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code.ID(), location(fs, d.Primary), firstLine(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\n  note: %s %s", location(fs, n.Span), firstLine(n.Msg))
		}
	}
	return b.String()
}

func location(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	f := fs.Get(sp.File)
	if f == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
