package mail

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/customeros/webmail/internal/metrics"
)

const (
	strategyAllOrNothing = "all_or_nothing"
	strategyBestEffort   = "best_effort"
)

// AllOrNothingJoin runs fn for every id with at most limit calls in flight (no bound when limit <= 0).
// The first failure cancels the remaining calls and is returned; results keep the input order.
func AllOrNothingJoin[T any](ctx context.Context, ids []string, limit int, fn func(ctx context.Context, id string) (T, error)) ([]T, error) {
	results := make([]T, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			res, err := fn(gctx, id)
			metrics.RecordFanOutResult(strategyAllOrNothing, err == nil)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type ItemError struct {
	ID  string
	Err error
}

// BatchOutcome is the per-id accounting of a best effort fan-out.
type BatchOutcome struct {
	Succeeded []string
	Failed    []ItemError
}

func (o BatchOutcome) Total() int {
	return len(o.Succeeded) + len(o.Failed)
}

func (o BatchOutcome) FailedIDs() []string {
	ids := make([]string, 0, len(o.Failed))
	for _, f := range o.Failed {
		ids = append(ids, f.ID)
	}
	return ids
}

// BestEffortJoin runs fn for every id concurrently and records each outcome independently.
// Both lists keep the input order.
func BestEffortJoin(ctx context.Context, ids []string, fn func(ctx context.Context, id string) error) BatchOutcome {
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn(ctx, id)
			metrics.RecordFanOutResult(strategyBestEffort, errs[i] == nil)
		}()
	}
	wg.Wait()

	outcome := BatchOutcome{Succeeded: []string{}, Failed: []ItemError{}}
	for i, id := range ids {
		if errs[i] != nil {
			outcome.Failed = append(outcome.Failed, ItemError{ID: id, Err: errs[i]})
		} else {
			outcome.Succeeded = append(outcome.Succeeded, id)
		}
	}
	return outcome
}
