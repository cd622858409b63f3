package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"athena/internal/diag"
	"athena/internal/diagfmt"
	"athena/internal/driver"
	"athena/internal/observ"
	"athena/internal/source"
)

// loadSource picks the input of tokenize, parse and eval: the --expr text,
// the file argument, or stdin.
func (a *app) loadSource(cmd *cobra.Command, args []string) (*source.FileSet, source.FileID, error) {
	if f := cmd.Flags().Lookup("expr"); f != nil && f.Changed {
		if len(args) > 0 {
			return nil, 0, fmt.Errorf("--expr and a file argument are mutually exclusive")
		}
		fs, id := driver.Virtual("<expr>", []byte(f.Value.String()))
		return fs, id, nil
	}
	if len(args) == 1 && args[0] != "-" {
		fs, id, err := driver.Load(args[0])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return fs, id, nil
	}
	src, err := io.ReadAll(a.input())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read stdin: %w", err)
	}
	fs, id := driver.Virtual("<stdin>", src)
	return fs, id, nil
}

// printDiagnostics renders bag to w in pretty form. Warnings are hidden by
// --quiet; errors never are.
func (a *app) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	if a.quiet {
		if !bag.HasErrors() {
			return
		}
		errs := diag.NewBag(bag.Len())
		for _, d := range bag.Items() {
			if d.Severity.AtLeast(diag.SevError) {
				errs.Add(d)
			}
		}
		bag = errs
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     a.color,
		Context:   1,
		ShowNotes: true,
	})
}

// printTimings writes the --timings summary.
func (a *app) printTimings(w io.Writer, t *observ.Timer) {
	if !a.timings || t == nil {
		return
	}
	fmt.Fprint(w, t.Summary())
}

// diagnosticsJSON is the machine form shared by the json outputs.
func diagnosticsJSON(bag *diag.Bag, fs *source.FileSet) diagfmt.DiagnosticsOutput {
	return diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeRelative,
		IncludeNotes:     true,
	})
}
