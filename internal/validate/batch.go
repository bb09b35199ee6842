package validate

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"theoremc/internal/diag"
	"theoremc/internal/schema"
	"theoremc/internal/trace"
)

// Mode selects how a batch reacts to failing documents.
type Mode uint8

const (
	// FailFast reports only the lowest-indexed failure.
	FailFast Mode = iota
	// CollectAll reports one failure per failing document.
	CollectAll
)

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "fail-fast":
		return FailFast, nil
	case "collect-all":
		return CollectAll, nil
	default:
		return FailFast, fmt.Errorf("unknown validation mode %q (want fail-fast or collect-all)", s)
	}
}

type Options struct {
	Jobs int // <= 0 means GOMAXPROCS
	Mode Mode
}

// Batch validates docs concurrently. Results are reported in document
// order regardless of scheduling, so the outcome is deterministic. The
// returned error is non-nil only when ctx is cancelled.
func Batch(ctx context.Context, docs []schema.Document, opts Options) ([]*diag.Diagnostic, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// One slot per document; each goroutine writes only its own index.
	results := make([]*diag.Diagnostic, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(docs)))
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := trace.Start(gctx, trace.ScopeDocument, docs[i].Key())
			results[i] = document(&docs[i])
			if results[i] != nil {
				span.End("invalid")
			} else {
				span.End("ok")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*diag.Diagnostic
	for _, d := range results {
		if d == nil {
			continue
		}
		out = append(out, d)
		if opts.Mode == FailFast {
			break
		}
	}
	return out, nil
}
