// Package pipeline wraps the amortization engine with validation and the
// whole-result cache.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/payoff/internal/amortization"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/store"
)

// Request is the full input tuple of one simulation.
type Request struct {
	Name        string               `json:"name,omitempty"`
	Params      model.LoanParameters `json:"params"`
	Extras      []ledger.Payment     `json:"extras,omitempty"`
	ApplyExtras bool                 `json:"apply_extras,omitempty"`
	Strict      bool                 `json:"strict,omitempty"`
}

// Result holds the output of one simulation.
type Result struct {
	Request  Request
	History  model.PaymentHistory
	Cached   bool
	CacheErr error // non-fatal; the history was computed directly
}

// ProgressFunc is called during batch runs to report progress.
// current is the number of requests finished so far, total is the total count.
type ProgressFunc func(current, total int)

// Simulate runs the engine for req without any cache.
func Simulate(req Request) model.PaymentHistory {
	if req.ApplyExtras && len(req.Extras) > 0 {
		return amortization.SimulateWithExtras(req.Params, ledger.Schedule(req.Extras))
	}
	return amortization.Simulate(req.Params)
}

// Run validates req when strict, then serves it from cache or computes and
// stores it. cache may be nil. Cache failures never fail the run; they are
// reported in Result.CacheErr.
func Run(ctx context.Context, cache store.ResultCache, req Request) (*Result, error) {
	if req.Strict {
		if err := amortization.Validate(req.Params); err != nil {
			return nil, err
		}
	}

	res := &Result{Request: req}
	if cache == nil {
		res.History = Simulate(req)
		return res, nil
	}

	key := store.Key(req.Params, req.Extras, req.ApplyExtras)
	h, ok, err := cache.Get(ctx, key)
	if err != nil {
		res.CacheErr = fmt.Errorf("cache lookup: %w", err)
	} else if ok {
		res.History = h
		res.Cached = true
		return res, nil
	}

	res.History = Simulate(req)
	if err := cache.Put(ctx, key, req.Params, res.History); err != nil && res.CacheErr == nil {
		res.CacheErr = fmt.Errorf("cache store: %w", err)
	}
	return res, nil
}

// RunBatch runs every request with a bounded worker pool. Results keep the
// order of reqs. The first validation error aborts the batch.
func RunBatch(ctx context.Context, cache store.ResultCache, reqs []Request, progressFn ProgressFunc) ([]*Result, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(reqs) {
		numWorkers = len(reqs)
	}

	work := make(chan int, len(reqs))
	results := make([]*Result, len(reqs))
	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range reqs {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					continue
				}
				results[idx], errs[idx] = Run(ctx, cache, reqs[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(reqs))
				}
			}
		}()
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			name := reqs[i].Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("scenario %s: %w", name, err)
		}
	}
	return results, nil
}
