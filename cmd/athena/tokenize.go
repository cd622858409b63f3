package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"athena/internal/diagfmt"
	"athena/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file]",
		Short: "Tokenize an expression",
		Long:  `Tokenize breaks an expression from a file, --expr or stdin into its tokens`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|json)")
	cmd.Flags().StringP("expr", "e", "", "tokenize this text instead of a file")
	cmd.Flags().Int("max-tokens", 0, "stop after this many tokens (0 = no limit)")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, args []string) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	maxTokens, err := cmd.Flags().GetInt("max-tokens")
	if err != nil {
		return fmt.Errorf("failed to get max-tokens flag: %w", err)
	}
	fs, id, err := a.loadSource(cmd, args)
	if err != nil {
		return err
	}

	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	opts.MaxTokens = maxTokens
	result := driver.Tokenize(cmd.Context(), fs, id, opts)

	// Диагностика в stderr, токены в stdout
	a.printDiagnostics(cmd.ErrOrStderr(), result.Lex, fs)
	a.printTimings(cmd.ErrOrStderr(), result.Timer)

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, fs)
	}
	if err != nil {
		return err
	}
	if result.Lex.HasErrors() {
		return errReported
	}
	return nil
}
