package pipeline

import (
	"context"
	"sync"
)

// runAll applies fn to every item with at most limit goroutines in
// flight and returns results in input order. Per-item failures are fn's
// business; runAll only stops scheduling new work when ctx is canceled.
// With limit 1 execution is strictly sequential.
func runAll[I, O any](ctx context.Context, limit int, items []I, fn func(context.Context, I) O) []O {
	out := make([]O, len(items))
	if limit <= 1 {
		for i := range items {
			if ctx.Err() != nil {
				break
			}
			out[i] = fn(ctx, items[i])
		}
		return out
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

scheduleLoop:
	for i := range items {
		if ctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
			// acquired
		case <-ctx.Done():
			break scheduleLoop
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = fn(ctx, items[i])
		}(i)
	}

	wg.Wait()
	return out
}
