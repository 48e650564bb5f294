// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve fans queries out to the retrieval strategies and collects
// the raw hits. Queries run one at a time under a shared rate budget;
// failures degrade to empty results and never abort the run.
package retrieve

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/broadsearch/pkg/types"
)

// Backend searches with a single strategy. Each strategy (semantic,
// keyword) implements this interface so new strategies can be added
// without touching aggregation.
type Backend interface {
	Strategy() types.Strategy
	Search(ctx context.Context, query string, limit int) ([]types.Paper, error)
}

// Output holds the raw hits and any per-call errors. Hit order follows
// query order, then backend order within a query; downstream stages only
// depend on set membership but aggregation preserves this order for
// reproducible snippet tie-breaks.
type Output struct {
	Hits       []types.RetrievalHit
	CallErrors []string
}

// waitFn pauses between external calls. Tests replace it to avoid real sleeps.
var waitFn = func(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Run retrieves hits for every (query, strategy) combination. Queries are
// processed sequentially; within one query the strategies run either
// sequentially with a cooldown between calls (default) or concurrently
// when cfg.Concurrent is set. A failed call logs a warning to w and
// contributes no hits.
func Run(ctx context.Context, queries []string, backends []Backend, cfg types.RetrievalConfig, w io.Writer) Output {
	limit := cfg.LimitPerStrategy
	if limit <= 0 {
		limit = 10
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = 3 * time.Second
	}

	var out Output
	firstCall := true

	for _, query := range queries {
		if cfg.Concurrent {
			if !firstCall {
				waitFn(ctx, cooldown)
			}
			firstCall = false
			runConcurrent(ctx, query, backends, limit, w, &out)
			continue
		}

		for _, b := range backends {
			if !firstCall {
				waitFn(ctx, cooldown)
			}
			firstCall = false

			papers, err := b.Search(ctx, query, limit)
			if err != nil {
				msg := fmt.Sprintf("%s search for %q: %v", b.Strategy(), query, err)
				out.CallErrors = append(out.CallErrors, msg)
				fmt.Fprintf(w, "warning: %s\n", msg)
				continue
			}
			appendHits(&out, papers, query, b.Strategy())
			fmt.Fprintf(w, "%s search for %q: %d papers\n", b.Strategy(), query, len(papers))
		}
	}

	fmt.Fprintf(w, "total retrieval hits: %d\n", len(out.Hits))
	return out
}

// runConcurrent issues all strategy calls for one query in parallel and
// joins the results. One side failing does not affect the other; the
// collection point is append-only and insensitive to completion order.
func runConcurrent(ctx context.Context, query string, backends []Backend, limit int, w io.Writer, out *Output) {
	type result struct {
		strategy types.Strategy
		papers   []types.Paper
		err      error
	}

	ch := make(chan result, len(backends))
	var wg sync.WaitGroup
	for _, b := range backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			papers, err := b.Search(ctx, query, limit)
			ch <- result{strategy: b.Strategy(), papers: papers, err: err}
		}(b)
	}
	wg.Wait()
	close(ch)

	// Collect in backend order so hit order stays deterministic.
	byStrategy := make(map[types.Strategy]result, len(backends))
	for r := range ch {
		byStrategy[r.strategy] = r
	}
	for _, b := range backends {
		r := byStrategy[b.Strategy()]
		if r.err != nil {
			msg := fmt.Sprintf("%s search for %q: %v", r.strategy, query, r.err)
			out.CallErrors = append(out.CallErrors, msg)
			fmt.Fprintf(w, "warning: %s\n", msg)
			continue
		}
		appendHits(out, r.papers, query, r.strategy)
		fmt.Fprintf(w, "%s search for %q: %d papers\n", r.strategy, query, len(r.papers))
	}
}

func appendHits(out *Output, papers []types.Paper, query string, strategy types.Strategy) {
	for _, p := range papers {
		out.Hits = append(out.Hits, types.RetrievalHit{
			Paper:    p,
			Query:    query,
			Strategy: strategy,
		})
	}
}
