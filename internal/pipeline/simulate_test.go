package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/payoff/internal/amortization"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/store"
)

func loan() model.LoanParameters {
	return model.LoanParameters{
		Principal:                 250000,
		AnnualInterestRatePercent: 6,
		MonthlyPayment:            2000,
		YearlyTax:                 2500,
		YearlyInsurance:           3000,
		TermMonths:                360,
	}
}

type failingCache struct{ *store.MemoryCache }

func (failingCache) Get(context.Context, string) (model.PaymentHistory, bool, error) {
	return model.PaymentHistory{}, false, errors.New("disk on fire")
}

func TestRunUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemoryCache()
	req := Request{Params: loan()}

	first, err := Run(ctx, cache, req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.Cached {
		t.Fatal("first run reported a cache hit")
	}

	second, err := Run(ctx, cache, req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !second.Cached {
		t.Fatal("second run missed the cache")
	}
	if second.History.MonthCount != first.History.MonthCount || second.History.Left != first.History.Left {
		t.Fatalf("cached history differs: %+v vs %+v", second.History.Totals, first.History.Totals)
	}
}

func TestRunFallsBackOnCacheError(t *testing.T) {
	res, err := Run(context.Background(), failingCache{store.NewMemoryCache()}, Request{Params: loan()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.CacheErr == nil {
		t.Fatal("expected CacheErr to be reported")
	}
	if res.History.MonthCount == 0 {
		t.Fatal("history was not computed after cache failure")
	}
}

func TestRunStrictValidation(t *testing.T) {
	p := loan()
	p.Principal = -5

	if _, err := Run(context.Background(), nil, Request{Params: p, Strict: true}); !errors.Is(err, amortization.ErrInvalidParameters) {
		t.Fatalf("Run strict err = %v, want ErrInvalidParameters", err)
	}
	if _, err := Run(context.Background(), nil, Request{Params: p}); err != nil {
		t.Fatalf("Run non-strict err = %v", err)
	}
}

func TestSimulateAppliesExtrasOnlyWhenAsked(t *testing.T) {
	extras := []ledger.Payment{{ID: 1, Amount: 500, Repeat: ledger.Monthly}}

	plain := Simulate(Request{Params: loan(), Extras: extras})
	applied := Simulate(Request{Params: loan(), Extras: extras, ApplyExtras: true})

	if plain.MonthCount != amortization.Simulate(loan()).MonthCount {
		t.Fatal("extras changed the schedule without ApplyExtras")
	}
	if applied.MonthCount >= plain.MonthCount {
		t.Fatalf("extras did not shorten the loan: %d >= %d", applied.MonthCount, plain.MonthCount)
	}
}

func TestRunBatchKeepsOrder(t *testing.T) {
	var reqs []Request
	for _, pay := range []float64{1800, 2200, 2600, 3000} {
		p := loan()
		p.MonthlyPayment = pay
		reqs = append(reqs, Request{Params: p})
	}

	var calls atomic.Int64
	results, err := RunBatch(context.Background(), store.NewMemoryCache(), reqs, func(_, total int) {
		calls.Add(1)
		if total != len(reqs) {
			t.Errorf("progress total = %d", total)
		}
	})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("results = %d, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Request.Params.MonthlyPayment != reqs[i].Params.MonthlyPayment {
			t.Fatalf("result %d out of order", i)
		}
	}
	if int(calls.Load()) != len(reqs) {
		t.Fatalf("progress calls = %d, want %d", calls.Load(), len(reqs))
	}
}

func TestRunBatchReportsScenarioName(t *testing.T) {
	bad := loan()
	bad.YearlyTax = -1
	_, err := RunBatch(context.Background(), nil, []Request{
		{Name: "ok", Params: loan()},
		{Name: "broken", Params: bad, Strict: true},
	}, nil)
	if err == nil || !errors.Is(err, amortization.ErrInvalidParameters) {
		t.Fatalf("RunBatch err = %v", err)
	}
}
