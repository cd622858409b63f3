package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"

	"athena/internal/ast"
	"athena/internal/diag"
	"athena/internal/engine"
	"athena/internal/eval"
	"athena/internal/lexer"
	"athena/internal/observ"
	"athena/internal/parser"
	"athena/internal/source"
	"athena/internal/token"
	"athena/internal/trace"
)

// Result is everything one run over a file produced. Stages that did not run
// leave their fields zero.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	// Roots holds one tree per expression; exactly one unless Options.Program.
	Roots []ast.ExprID

	// Lexical and syntax diagnostics are kept in independent lists.
	Lex    *diag.Bag
	Syntax *diag.Bag
	// Eval holds evaluator warnings.
	Eval *diag.Bag

	// Values is aligned with Roots when Evaluated.
	Values    []engine.Value
	Evaluated bool

	Timer *observ.Timer
}

// HasErrors reports lexical or syntax errors; evaluation is skipped then.
func (r *Result) HasErrors() bool {
	return r.Lex.HasErrors() || r.Syntax.HasErrors()
}

// Diagnostics merges the three lists into one sorted bag for rendering.
func (r *Result) Diagnostics() *diag.Bag {
	out := diag.NewBag(r.Lex.Len() + r.Syntax.Len() + r.Eval.Len())
	out.Merge(r.Lex)
	out.Merge(r.Syntax)
	out.Merge(r.Eval)
	out.Sort()
	return out
}

// ValueText prints the values one per line.
func (r *Result) ValueText() string {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\n")
}

// Load reads path into a fresh FileSet.
func Load(path string) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, 0, err
	}
	return fs, id, nil
}

// Virtual wraps an in-memory source such as a -e argument or stdin.
func Virtual(name string, src []byte) (*source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	return fs, fs.AddVirtual(name, src)
}

type stage uint8

const (
	stageLex stage = iota
	stageParse
	stageEval
)

// Tokenize runs the lexer only.
func Tokenize(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	r, _ := run(ctx, fs, id, opts, stageLex, nil)
	return r
}

// Parse runs the lexer and the parser.
func Parse(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	r, _ := run(ctx, fs, id, opts, stageParse, nil)
	return r
}

// Eval runs the whole pipeline. Evaluation is skipped when the file has
// lexical or syntax errors. The error is non-nil only when ctx ends during
// evaluation.
func Eval(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	return run(ctx, fs, id, opts, stageEval, nil)
}

func run(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options, upto stage, sink ProgressSink) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = opts.withDefaults()
	file := fs.Get(id)
	if file == nil {
		panic(fmt.Sprintf("driver: file %d is not in the FileSet", id))
	}

	r := &Result{
		FileSet: fs,
		File:    file,
		Lex:     diag.NewBag(opts.MaxDiagnostics),
		Syntax:  diag.NewBag(opts.MaxDiagnostics),
		Eval:    diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	reporter := diag.NewDedupReporter(diag.PhaseReporter{Lexer: r.Lex, Syntax: r.Syntax, Other: r.Eval})

	ctx, fileSpan := trace.StartSpan(ctx, trace.ScopeFile, file.Path)
	defer fileSpan.End("")

	step := func(s Stage, name string) (context.Context, func(note string)) {
		emit(sink, Event{File: file.Path, Stage: s, Status: StatusWorking})
		sctx, span := trace.StartSpan(ctx, trace.ScopePass, name)
		done := r.Timer.Track(name)
		return sctx, func(note string) {
			done(note)
			span.End(note)
		}
	}

	_, done := step(StageLex, "lex")
	r.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: reporter, MaxTokens: opts.MaxTokens})
	done(fmt.Sprintf("%d tokens", len(r.Tokens)))
	if upto == stageLex {
		return r, nil
	}

	_, done = step(StageParse, "parse")
	hint, err := safecast.Conv[uint](len(r.Tokens))
	if err != nil {
		panic(fmt.Errorf("token count overflow: %w", err))
	}
	r.Builder = ast.NewBuilder(ast.Hints{Exprs: hint}, nil)
	popts := parser.Options{MaxErrors: opts.MaxErrors, Reporter: reporter}
	if opts.Program {
		r.Roots = parser.ParseProgram(r.Tokens, r.Builder, popts).Roots
	} else {
		r.Roots = []ast.ExprID{parser.ParseExpr(r.Tokens, r.Builder, popts).Root}
	}
	done(fmt.Sprintf("%d nodes", r.Builder.Exprs.Len()))
	if upto == stageParse || r.HasErrors() {
		return r, nil
	}

	ectx, done := step(StageEval, "eval")
	evopts := []eval.Option{eval.WithSimplify(opts.Simplify), eval.WithReporter(reporter)}
	if opts.Approx {
		evopts = append(evopts, eval.WithApprox(opts.Precision))
	}
	ev := eval.New(opts.Engine, opts.Registry, evopts...)
	r.Values = make([]engine.Value, 0, len(r.Roots))
	for _, root := range r.Roots {
		v, err := ev.Evaluate(ectx, r.Builder, root)
		if err != nil {
			done("canceled")
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				diag.ReportWarning(reporter, diag.EvalCanceled, r.Builder.Exprs.Get(root).Span, "evaluation canceled").Emit()
				return r, err
			}
			return r, fmt.Errorf("%s: %w", file.Path, err)
		}
		r.Values = append(r.Values, v)
	}
	r.Evaluated = true
	done(fmt.Sprintf("%d values", len(r.Values)))
	return r, nil
}

// elapsed sums the recorded phases.
func elapsed(t *observ.Timer) time.Duration {
	var d time.Duration
	for _, p := range t.Phases() {
		d += p.Dur
	}
	return d
}
