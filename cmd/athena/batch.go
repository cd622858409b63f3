package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"athena/internal/cache"
	"athena/internal/diagfmt"
	"athena/internal/driver"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] [file.ath|directory]...",
		Short: "Evaluate many files in parallel",
		Long: `Batch evaluates every given file and every *.ath file under the given
directories on a bounded pool of workers. Unchanged files can be answered
from an on-disk result cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = [batch].jobs or GOMAXPROCS)")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files (default [batch].cache)")
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/athena)")
	cmd.Flags().Bool("clear-cache", false, "drop every cached result before running")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("simplify", false, "simplify results (default [eval].simplify)")
	cmd.Flags().Bool("approx", false, "approximate results as floats (default [eval].approx)")
	cmd.Flags().Uint("precision", 0, "float precision in bits for --approx (default [eval].precision)")
	return cmd
}

type batchFileJSON struct {
	Path         string                     `json:"path"`
	Values       []string                   `json:"values"`
	Cached       bool                       `json:"cached,omitempty"`
	Error        string                     `json:"error,omitempty"`
	LexErrors    int                        `json:"lex_errors"`
	SyntaxErrors int                        `json:"syntax_errors"`
	Warnings     int                        `json:"warnings"`
	Diagnostics  *diagfmt.DiagnosticsOutput `json:"diagnostics,omitempty"`
}

type batchJSON struct {
	Files  []batchFileJSON `json:"files"`
	Failed int             `json:"failed"`
}

func runBatch(cmd *cobra.Command, a *app, args []string) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	bopts := driver.BatchOptions{Options: opts, Jobs: a.cfg.Batch.Jobs}
	if cmd.Flags().Changed("jobs") {
		if bopts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if bopts.Jobs < 0 {
		return errors.New("--jobs must not be negative")
	}
	if bopts.Cache, err = a.openCache(cmd); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.Ext)
	}

	var batch *driver.Batch
	if format == "pretty" && !a.quiet && shouldUseTUI(mode, cmd.OutOrStdout()) {
		batch, err = runBatchWithUI(cmd.Context(), cmd.OutOrStdout(), "evaluating", files, bopts)
	} else {
		batch, err = driver.EvalFiles(cmd.Context(), files, bopts)
	}
	if err != nil {
		return err
	}

	if format == "json" {
		if err := writeBatchJSON(cmd.OutOrStdout(), batch); err != nil {
			return err
		}
	} else {
		a.writeBatchPretty(cmd.OutOrStdout(), cmd.ErrOrStderr(), batch)
	}
	if batch.Failed() > 0 {
		return errReported
	}
	return nil
}

// openCache returns nil when caching is off.
func (a *app) openCache(cmd *cobra.Command) (*cache.Disk, error) {
	flags := cmd.Flags()
	enabled := a.cfg.Batch.Cache
	if flags.Changed("cache") {
		enabled, _ = flags.GetBool("cache")
	}
	drop, _ := flags.GetBool("clear-cache")
	if !enabled && !drop {
		return nil, nil
	}

	dir, _ := flags.GetString("cache-dir")
	var (
		c   *cache.Disk
		err error
	)
	if dir != "" {
		c, err = cache.OpenDir(dir)
	} else {
		c, err = cache.Open("athena")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if drop {
		if err := c.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return c, nil
}

func (a *app) writeBatchPretty(out, errOut io.Writer, batch *driver.Batch) {
	cached := 0
	for i := range batch.Files {
		f := &batch.Files[i]
		if f.Result != nil {
			a.printDiagnostics(errOut, f.Result.Diagnostics(), batch.FileSet)
		}
		switch {
		case f.Err != nil:
			fmt.Fprintf(out, "%s: error: %v\n", f.Path, f.Err)
		case f.Failed():
			fmt.Fprintf(out, "%s: error (%d lexical, %d syntax)\n", f.Path, f.LexErrors, f.SyntaxErrors)
		default:
			line := fmt.Sprintf("%s: %s", f.Path, strings.ReplaceAll(f.Value, "\n", "; "))
			if f.Cached {
				line += " [cached]"
			}
			fmt.Fprintln(out, line)
		}
		if f.Cached {
			cached++
		}
	}
	if !a.quiet {
		fmt.Fprintf(errOut, "%d files, %d failed, %d cached\n", len(batch.Files), batch.Failed(), cached)
	}
	a.printTimings(errOut, batch.Timer)
}

func writeBatchJSON(out io.Writer, batch *driver.Batch) error {
	payload := batchJSON{Files: make([]batchFileJSON, len(batch.Files)), Failed: batch.Failed()}
	for i := range batch.Files {
		f := &batch.Files[i]
		entry := batchFileJSON{
			Path:         f.Path,
			Values:       []string{},
			Cached:       f.Cached,
			LexErrors:    f.LexErrors,
			SyntaxErrors: f.SyntaxErrors,
			Warnings:     f.Warnings,
		}
		if f.Value != "" {
			entry.Values = strings.Split(f.Value, "\n")
		}
		if f.Err != nil {
			entry.Error = f.Err.Error()
		}
		if f.Result != nil && f.Result.Diagnostics().Len() > 0 {
			d := diagnosticsJSON(f.Result.Diagnostics(), batch.FileSet)
			entry.Diagnostics = &d
		}
		payload.Files[i] = entry
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
