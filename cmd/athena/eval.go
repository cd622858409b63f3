package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"athena/internal/diagfmt"
	"athena/internal/driver"
	"athena/internal/observ"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] [file]",
		Short: "Evaluate an expression",
		Long: `Eval lexes, parses and evaluates an expression from --expr, a file or stdin.
A file is read as a program: one expression per line or per ';'.
Evaluation is skipped when the input has lexical or syntax errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|json)")
	cmd.Flags().StringP("expr", "e", "", "evaluate this text instead of a file")
	cmd.Flags().Bool("program", false, "read separator-delimited statements from --expr or stdin")
	cmd.Flags().Bool("simplify", false, "simplify results (default [eval].simplify)")
	cmd.Flags().Bool("approx", false, "approximate results as floats (default [eval].approx)")
	cmd.Flags().Uint("precision", 0, "float precision in bits for --approx (default [eval].precision)")
	return cmd
}

type evalOutput struct {
	Values      []string                  `json:"values"`
	Evaluated   bool                      `json:"evaluated"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timings     *observ.Report            `json:"timings,omitempty"`
}

func runEval(cmd *cobra.Command, a *app, args []string) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	program, err := cmd.Flags().GetBool("program")
	if err != nil {
		return fmt.Errorf("failed to get program flag: %w", err)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	opts.Program = program || (len(args) == 1 && args[0] != "-")

	fs, id, err := a.loadSource(cmd, args)
	if err != nil {
		return err
	}
	result, evalErr := driver.Eval(cmd.Context(), fs, id, opts)

	out := cmd.OutOrStdout()
	if format == "json" {
		payload := evalOutput{
			Values:      make([]string, len(result.Values)),
			Evaluated:   result.Evaluated,
			Diagnostics: diagnosticsJSON(result.Diagnostics(), fs),
		}
		for i, v := range result.Values {
			payload.Values[i] = v.String()
		}
		if a.timings {
			report := result.Timer.Report()
			payload.Timings = &report
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		a.printDiagnostics(cmd.ErrOrStderr(), result.Diagnostics(), fs)
		if len(result.Values) > 0 {
			fmt.Fprintln(out, result.ValueText())
		}
		a.printTimings(cmd.ErrOrStderr(), result.Timer)
	}

	if evalErr != nil {
		return evalErr
	}
	if result.HasErrors() {
		return errReported
	}
	return nil
}
