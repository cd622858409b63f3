package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"athena/internal/diag"
	"athena/internal/source"
)

// tabWidth is the display width of a tab in source excerpts.
const tabWidth = 4

type palette struct {
	sev  map[diag.Severity]*color.Color
	path *color.Color
	gut  *color.Color
	note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		path: mk(color.Bold),
		gut:  mk(color.FgBlue),
		note: mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	if c, ok := p.sev[s]; ok {
		return c
	}
	return p.path
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}
	pal := newPalette(opts.Color)

	for i := range limit {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, items[i], fs, opts, pal)
	}
	if rest := len(items) - limit; rest > 0 {
		fmt.Fprintf(w, "\n... and %d more\n", rest)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "(%d more diagnostics were not recorded)\n", dropped)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprint(location(fs, d.Primary, opts.PathMode, opts.BaseDir)),
		sev.Sprint(d.Severity.String()),
		sev.Sprint(d.Code.ID()),
		d.Message,
	)
	excerpt(w, fs, d.Primary, opts.Context, sev, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"),
			location(fs, n.Span, opts.PathMode, opts.BaseDir),
			n.Msg,
		)
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode, base string) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(f, mode, base), start.Line, start.Col)
}

// excerpt prints the primary line with context lines around it and underlines
// the span. Spans crossing lines are underlined to the end of the first line.
func excerpt(w io.Writer, fs *source.FileSet, sp source.Span, context int8, sev *color.Color, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	total := f.LineCount()

	first, last := start.Line, start.Line
	if context > 0 {
		ctx := uint32(context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last = min(last+ctx, total)
	}
	gutter := len(fmt.Sprint(last))
	pad := strings.Repeat(" ", gutter)

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(w, " %s %s %s\n", pal.gut.Sprintf("%*d", gutter, ln), pal.gut.Sprint("|"), expandTabs(line))
		if ln != start.Line {
			continue
		}

		from := int(start.Col) - 1
		to := len(line)
		if end.Line == start.Line {
			to = int(end.Col) - 1
		}
		from = min(from, len(line))
		to = max(min(to, len(line)), from)

		indent := displayWidth(line[:from])
		width := max(displayWidth(line[:to])-indent, 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gut.Sprint("|"), strings.Repeat(" ", indent), sev.Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth measures s in terminal cells; wide runes take two.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
