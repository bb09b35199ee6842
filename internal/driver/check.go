// Package driver runs the front end over a set of files: discovery,
// loading, validation and symbol mangling, reporting progress as it goes.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"theoremc/internal/ctxlog"
	"theoremc/internal/diag"
	"theoremc/internal/loader"
	"theoremc/internal/mangle"
	"theoremc/internal/observ"
	"theoremc/internal/schema"
	"theoremc/internal/source"
	"theoremc/internal/trace"
	"theoremc/internal/validate"
)

type Options struct {
	Jobs           int // <= 0 means GOMAXPROCS
	Mode           validate.Mode
	Extensions     []string
	MaxDiagnostics int
	Progress       ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome of loading one file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Docs    []schema.Document
	LoadErr *diag.Diagnostic
	read    bool
}

// Result holds everything a check run produced. Symbols is nil unless
// every file loaded and validated cleanly.
type Result struct {
	FileSet     *source.FileSet
	Files       []FileResult
	Symbols     *mangle.SymbolTable
	Diagnostics *diag.Bag
}

// OK reports whether the run produced no errors.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Documents returns the documents of every loaded file in file order.
func (r *Result) Documents() []schema.Document {
	var docs []schema.Document
	for i := range r.Files {
		docs = append(docs, r.Files[i].Docs...)
	}
	return docs
}

// Check discovers the files under paths and runs them through the front
// end. In fail-fast mode the diagnostic of the first failing document, in
// file and document order, is the only one reported. In collect-all mode
// every file is visited and the diagnostics are sorted by location.
//
// Problems with the inputs end up in Result.Diagnostics; the error is
// reserved for discovery failures and cancellation.
func Check(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	log := ctxlog.FromContext(ctx)

	done := opts.Timer.Track("discover")
	files, err := Discover(paths, opts.Extensions)
	if err != nil {
		done("failed")
		span.End("discover failed")
		return nil, err
	}
	done(fmt.Sprintf("%d files", len(files)))
	log.Debug("discovered theorem files", "count", len(files), "mode", opts.Mode.String())

	res := &Result{
		FileSet:     source.NewFileSet(),
		Files:       make([]FileResult, len(files)),
		Diagnostics: diag.NewBag(opts.MaxDiagnostics),
	}
	if err := res.loadFiles(ctx, files, opts); err != nil {
		span.End("cancelled")
		return nil, err
	}
	if err := res.validateDocs(ctx, opts); err != nil {
		span.End("cancelled")
		return nil, err
	}
	if res.OK() {
		res.mangleSymbols(ctx, opts)
	}
	if opts.Mode == validate.CollectAll {
		res.Diagnostics.Sort()
	}

	span.WithExtra("files", fmt.Sprint(len(files))).
		WithExtra("diagnostics", fmt.Sprint(res.Diagnostics.Len()))
	span.End(outcome(res.OK()))
	return res, nil
}

func (r *Result) loadFiles(ctx context.Context, files []string, opts Options) error {
	done := opts.Timer.Track("load")
	ctx, span := trace.Start(ctx, trace.ScopePass, "load")
	log := ctxlog.FromContext(ctx)

	// FileSet is not safe for concurrent use, so reading is sequential.
	for i, p := range files {
		f := &r.Files[i]
		f.Path = p
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
		id, err := r.FileSet.Load(p)
		if err != nil {
			f.LoadErr = diag.Errorf(diag.IOReadFailure, diag.Location{Source: p}, "cannot read %s: %v", p, err).
				WithArg("path", p).
				WithArg("reason", err.Error())
			emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusError, Err: f.LoadErr})
			continue
		}
		f.FileID = id
		f.Path = r.FileSet.Get(id).Path
		f.read = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))
	for i := range r.Files {
		f := &r.Files[i]
		if !f.read {
			continue
		}
		file := r.FileSet.Get(f.FileID)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: f.Path, Stage: StageLoad, Status: StatusWorking})
			_, fspan := trace.Start(gctx, trace.ScopeFile, f.Path)

			docs, err := loader.LoadSource(file)
			if err != nil {
				f.LoadErr = asDiagnostic(f.Path, err)
				fspan.End("error")
				log.Debug("load failed", "file", f.Path, "code", f.LoadErr.Code.ID())
				emit(opts.Progress, Event{File: f.Path, Stage: StageLoad, Status: StatusError, Err: f.LoadErr, Elapsed: time.Since(start)})
				return nil
			}
			f.Docs = docs
			fspan.WithExtra("documents", fmt.Sprint(len(docs))).End("ok")
			log.Debug("loaded", "file", f.Path, "documents", len(docs))
			emit(opts.Progress, Event{File: f.Path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(start)})
			return nil
		})
	}
	err := g.Wait()
	span.End("")
	done("")
	return err
}

// validateDocs runs the checks over every document that loaded. In fail-fast
// mode only files before the first load failure take part, so whichever
// comes first in file order is reported.
func (r *Result) validateDocs(ctx context.Context, opts Options) error {
	done := opts.Timer.Track("validate")
	defer done("")
	ctx, span := trace.Start(ctx, trace.ScopePass, "validate")
	defer span.End("")
	log := ctxlog.FromContext(ctx)

	limit := len(r.Files)
	if opts.Mode == validate.FailFast {
		for i := range r.Files {
			if r.Files[i].LoadErr != nil {
				limit = i
				break
			}
		}
	}

	var docs []schema.Document
	owner := make(map[string]int, limit)
	for i := range r.Files[:limit] {
		if r.Files[i].LoadErr != nil {
			continue
		}
		owner[r.Files[i].Path] = i
		docs = append(docs, r.Files[i].Docs...)
	}

	start := time.Now()
	diags, err := validate.Batch(ctx, docs, validate.Options{Jobs: opts.Jobs, Mode: opts.Mode})
	if err != nil {
		return err
	}

	failed := make(map[int]*diag.Diagnostic)
	for _, d := range diags {
		if i, ok := owner[d.Location.Source]; ok {
			if _, seen := failed[i]; !seen {
				failed[i] = d
			}
		}
		log.Debug("validation failed", "file", d.Location.Source, "check", argOr(d, "check"))
	}
	for i := range r.Files[:limit] {
		f := &r.Files[i]
		if f.LoadErr != nil {
			continue
		}
		evt := Event{File: f.Path, Stage: StageValidate, Status: StatusDone, Elapsed: time.Since(start)}
		if d, ok := failed[i]; ok {
			evt.Status, evt.Err = StatusError, d
		}
		emit(opts.Progress, evt)
	}

	switch {
	case opts.Mode == validate.CollectAll:
		for i := range r.Files {
			r.Diagnostics.Add(r.Files[i].LoadErr)
		}
		for _, d := range diags {
			r.Diagnostics.Add(d)
		}
	case len(diags) > 0:
		r.Diagnostics.Add(diags[0])
	case limit < len(r.Files):
		r.Diagnostics.Add(r.Files[limit].LoadErr)
	}
	return nil
}

func (r *Result) mangleSymbols(ctx context.Context, opts Options) {
	done := opts.Timer.Track("mangle")
	_, span := trace.Start(ctx, trace.ScopePass, "mangle")
	start := time.Now()

	files := make([]mangle.File, 0, len(r.Files))
	for i := range r.Files {
		files = append(files, mangle.File{Path: r.Files[i].Path, Docs: r.Files[i].Docs})
	}
	table, d := mangle.Batch(files)
	if d != nil {
		r.Diagnostics.Add(d)
		emit(opts.Progress, Event{Stage: StageMangle, Status: StatusError, Err: d, Elapsed: time.Since(start)})
		span.End("collision")
		done("collision")
		return
	}
	r.Symbols = table
	ctxlog.FromContext(ctx).Debug("mangled symbols",
		"actions", len(table.Actions), "modules", len(table.Modules), "harnesses", len(table.Harnesses))
	emit(opts.Progress, Event{Stage: StageMangle, Status: StatusDone, Elapsed: time.Since(start)})
	span.End("ok")
	done(fmt.Sprintf("%d harnesses", len(table.Harnesses)))
}

func asDiagnostic(path string, err error) *diag.Diagnostic {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return diag.NewError(diag.SchemaParseFailure, diag.Location{Source: path}, err.Error())
}

func argOr(d *diag.Diagnostic, name string) string {
	v, _ := d.Arg(name)
	return v
}

func jobLimit(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
