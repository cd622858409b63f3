package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"athena/internal/config"
	"athena/internal/driver"
	"athena/internal/prof"
	"athena/internal/trace"
	"athena/internal/version"
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfg     config.Config
	color   bool
	quiet   bool
	timings bool
	maxDiag int

	stdin   io.Reader
	tracer  trace.Tracer
	cleanup func()
}

// newRootCmd builds the command tree. Subcommands read the resolved
// settings from a once PersistentPreRunE has run.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "athena",
		Short:         "Symbolic expression front end and evaluator",
		Long:          `Athena tokenizes, parses and evaluates symbolic math expressions`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.configure(cmd); err != nil {
				return err
			}
			session, err := startProfiling(cmd)
			if err != nil {
				return err
			}
			cleanup, err := setupTracing(cmd, a)
			if err != nil {
				_ = session.Stop()
				return err
			}
			a.cleanup = func() {
				cleanup()
				if err := session.Stop(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", err)
				}
			}
			return nil
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "", "colorize output (auto|on|off); defaults to [output].color")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics to show")
	pf.String("config", "", "path to athena.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newEvalCmd(a),
		newBatchCmd(a),
		newBuiltinsCmd(a),
		newVersionCmd(a),
	)
	return root
}

// configure loads athena.toml and applies the persistent flags over it.
func (a *app) configure(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	path, err := pf.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		a.cfg, err = config.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		a.cfg, err = config.Discover(wd)
	}
	if err != nil {
		return err
	}

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = a.cfg.Output.Color
	}
	switch colorFlag {
	case "on":
		a.color = true
	case "off":
		a.color = false
	case "auto":
		a.color = isTerminal(cmd.ErrOrStderr())
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.timings, err = pf.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if a.maxDiag, err = pf.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if a.maxDiag < 0 {
		return errors.New("--max-diagnostics must not be negative")
	}
	return nil
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = pf.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = pf.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return prof.Start(opts)
}

// driverOptions merges the config with the eval flags a command declares.
func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: a.maxDiag,
		MaxErrors:      a.cfg.Parser.MaxErrors,
		Simplify:       a.cfg.Eval.Simplify,
		Approx:         a.cfg.Eval.Approx,
		Precision:      a.cfg.Eval.Precision,
	}
	flags := cmd.Flags()
	var err error
	if flags.Changed("simplify") {
		if opts.Simplify, err = flags.GetBool("simplify"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("approx") {
		if opts.Approx, err = flags.GetBool("approx"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("precision") {
		if opts.Precision, err = flags.GetUint("precision"); err != nil {
			return opts, err
		}
		if opts.Precision == 0 || opts.Precision > config.MaxPrecision {
			return opts, fmt.Errorf("--precision must be between 1 and %d", config.MaxPrecision)
		}
	}
	return opts, nil
}

// outputFormat resolves a command's --format against [output].format.
func (a *app) outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = a.cfg.Output.Format
	}
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func (a *app) input() io.Reader {
	if a.stdin != nil {
		return a.stdin
	}
	return os.Stdin
}

// main builds the command tree and executes it. Any error exits with status 1.
func main() {
	a := &app{}
	root := newRootCmd(a)
	if err := execute(root, a); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// execute runs root and releases the tracer. On panic the ring tracer, if
// any, is dumped to stderr before the panic continues.
func execute(root *cobra.Command, a *app) error {
	defer func() {
		if r := recover(); r != nil {
			if ring := trace.Ring(a.tracer); ring != nil {
				fmt.Fprintf(os.Stderr, "trace: last events before panic (%d earlier dropped):\n", ring.Dropped())
				if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
					fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
				}
			}
			panic(r)
		}
	}()
	defer func() {
		if a.cleanup != nil {
			a.cleanup()
			a.cleanup = nil
		}
	}()
	return root.Execute()
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
