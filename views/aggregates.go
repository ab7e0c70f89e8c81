package views

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/juho05/crossview/repos"
)

// aggregateCache stores the aggregates of the last reload.
// Reads never wait for a running reload.
type aggregateCache struct {
	current atomic.Pointer[repos.Aggregates]
}

func (a *aggregateCache) update(ctx context.Context, compute func(ctx context.Context) (repos.Aggregates, error)) error {
	a.invalidate()
	aggregates, err := compute(ctx)
	if err != nil {
		return fmt.Errorf("compute aggregates: %w", err)
	}
	a.current.Store(&aggregates)
	return nil
}

func (a *aggregateCache) invalidate() {
	a.current.Store(nil)
}

func (a *aggregateCache) reset() {
	a.current.Store(&repos.Aggregates{})
}

func (a *aggregateCache) get() (repos.Aggregates, bool) {
	v := a.current.Load()
	if v == nil {
		return repos.Aggregates{}, false
	}
	return *v, true
}
