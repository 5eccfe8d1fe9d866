package sources

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Pool bounds the enrichment calls a single adapter search runs at once. Every Map
// call gets its own ants pool, so concurrent searches never share workers.
type Pool struct {
	size int
}

// NewPool creates a pool running at most size tasks per Map call.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

// Map runs fn for i in [0, n) and waits for all of them. errs[i] is the error
// returned by fn(ctx, i), or the reason it never ran.
func (p *Pool) Map(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	pool, err := ants.NewPool(min(p.size, n))
	if err != nil {
		for i := range errs {
			errs[i] = fmt.Errorf("failed to create enrichment pool: %w", err)
		}
		return errs
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			errs[i] = fn(ctx, i)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("failed to submit enrichment task: %w", err)
		}
	}
	wg.Wait()
	return errs
}
