package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"athena/internal/ast"
	"athena/internal/diagfmt"
	"athena/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file]",
		Short: "Parse an expression and print its tree",
		Long: `Parse reads an expression from a file, --expr or stdin and prints the
syntax tree: "pretty" re-renders the source, "tree" shows the structure`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "tree", "output format (pretty|tree|json)")
	cmd.Flags().StringP("expr", "e", "", "parse this text instead of a file")
	cmd.Flags().Bool("program", false, "parse separator-delimited statements")
	cmd.Flags().Uint("max-errors", 0, "syntax error budget (default [parser].max_errors)")
	return cmd
}

type parseOutput struct {
	Trees       []string                  `json:"trees"`
	Source      []string                  `json:"source"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func runParse(cmd *cobra.Command, a *app, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	program, err := cmd.Flags().GetBool("program")
	if err != nil {
		return fmt.Errorf("failed to get program flag: %w", err)
	}

	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-errors") {
		if opts.MaxErrors, err = cmd.Flags().GetUint("max-errors"); err != nil {
			return fmt.Errorf("failed to get max-errors flag: %w", err)
		}
	}
	opts.Program = program

	fs, id, err := a.loadSource(cmd, args)
	if err != nil {
		return err
	}
	result := driver.Parse(cmd.Context(), fs, id, opts)
	a.printTimings(cmd.ErrOrStderr(), result.Timer)

	out := cmd.OutOrStdout()
	if format == "json" {
		payload := parseOutput{
			Trees:       make([]string, len(result.Roots)),
			Source:      make([]string, len(result.Roots)),
			Diagnostics: diagnosticsJSON(result.Diagnostics(), fs),
		}
		for i, root := range result.Roots {
			payload.Trees[i] = ast.Dump(result.Builder, root)
			payload.Source[i] = ast.Render(result.Builder, root)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		a.printDiagnostics(cmd.ErrOrStderr(), result.Diagnostics(), fs)
		for _, root := range result.Roots {
			if format == "tree" {
				fmt.Fprintln(out, ast.Dump(result.Builder, root))
			} else {
				fmt.Fprintln(out, ast.Render(result.Builder, root))
			}
		}
	}

	if result.HasErrors() {
		return errReported
	}
	return nil
}
