package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"athena/internal/cache"
	"athena/internal/diag"
	"athena/internal/observ"
	"athena/internal/source"
	"athena/internal/trace"
)

// BatchOptions configures EvalFiles.
type BatchOptions struct {
	Options
	// Jobs bounds the workers; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, answers unchanged files without evaluating them.
	Cache    *cache.Disk
	Progress ProgressSink
}

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path string
	// Result is nil when the file failed to load or came from the cache.
	Result *Result
	Value  string
	Cached bool
	// Err is an I/O failure; diagnostics are counted below.
	Err error

	LexErrors    int
	SyntaxErrors int
	Warnings     int
}

// Failed reports an I/O failure or error diagnostics.
func (f *FileResult) Failed() bool {
	return f.Err != nil || f.LexErrors > 0 || f.SyntaxErrors > 0
}

// Batch is the outcome of EvalFiles, in input order.
type Batch struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Timer sums the phases of every evaluated file.
	Timer *observ.Timer
}

// Failed counts files that failed.
func (b *Batch) Failed() int {
	n := 0
	for i := range b.Files {
		if b.Files[i].Failed() {
			n++
		}
	}
	return n
}

// EvalFiles evaluates every file in paths, each as a program of
// separator-delimited expressions, on a bounded pool of workers.
// The error is non-nil only when ctx ends.
func EvalFiles(ctx context.Context, paths []string, opts BatchOptions) (*Batch, error) {
	popts := opts.Options.withDefaults()
	popts.Program = true

	// Загружаем все файлы заранее: FileSet не потокобезопасен
	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make([]error, len(paths))
	for i, path := range paths {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	batch := &Batch{FileSet: fileSet, Files: make([]FileResult, len(paths)), Timer: observ.NewTimer()}
	if len(paths) == 0 {
		return batch, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	settings := cache.Settings{
		Simplify:  popts.Simplify,
		Approx:    popts.Approx,
		Precision: popts.Precision,
		Engine:    engineName(popts.Engine),
		MaxErrors: popts.MaxErrors,
		MaxTokens: popts.MaxTokens,
		Registry:  popts.Registry.Fingerprint(),
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "batch")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := &batch.Files[i]
			out.Path = path
			start := time.Now()

			if loadErrors[i] != nil {
				out.Err = loadErrors[i]
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: out.Err})
				return nil
			}
			file := fileSet.Get(fileIDs[i])

			var key cache.Digest
			if opts.Cache != nil {
				emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
				key = cache.Key(file.Hash, settings)
				entry, ok, err := opts.Cache.Get(key)
				if err != nil {
					trace.Point(trace.FromContext(gctx), trace.ScopeFile, "cache", err.Error(), span.ID())
				}
				if ok {
					fromEntry(out, entry)
					emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusCached, Elapsed: time.Since(start)})
					return nil
				}
			}

			r, err := run(gctx, fileSet, fileIDs[i], popts, stageEval, opts.Progress)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageEval, Status: StatusError, Err: err})
				return err
			}
			fromResult(out, r)

			if opts.Cache != nil {
				if err := opts.Cache.Put(key, toEntry(out)); err != nil {
					trace.Point(trace.FromContext(gctx), trace.ScopeFile, "cache", err.Error(), span.ID())
				}
			}

			status := StatusDone
			if out.Failed() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageEval, Status: status, Elapsed: elapsed(r.Timer)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batch, err
	}
	for i := range batch.Files {
		if r := batch.Files[i].Result; r != nil {
			batch.Timer.Merge(r.Timer)
		}
	}
	return batch, nil
}

func fromResult(out *FileResult, r *Result) {
	out.Result = r
	out.Value = r.ValueText()
	out.LexErrors = countSeverity(r.Lex, diag.SevError)
	out.SyntaxErrors = countSeverity(r.Syntax, diag.SevError)
	out.Warnings = countSeverity(r.Eval, diag.SevWarning)
}

func fromEntry(out *FileResult, e *cache.Entry) {
	out.Cached = true
	out.Value = e.Value
	out.LexErrors = e.LexErrors
	out.SyntaxErrors = e.SyntaxErrors
	out.Warnings = e.Warnings
}

func toEntry(out *FileResult) *cache.Entry {
	return &cache.Entry{
		Path:         out.Path,
		Value:        out.Value,
		LexErrors:    out.LexErrors,
		SyntaxErrors: out.SyntaxErrors,
		Warnings:     out.Warnings,
		Stored:       time.Now().UTC(),
	}
}

func countSeverity(b *diag.Bag, sev diag.Severity) int {
	n := 0
	for _, d := range b.Items() {
		if d.Severity == sev {
			n++
		}
	}
	return n + b.Dropped()
}
