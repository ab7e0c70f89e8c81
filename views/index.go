package views

import (
	"context"
	"fmt"

	"github.com/juho05/crossview/repos"
)

// cacheIndex tracks the materialized index rows of one model.
type cacheIndex[T repos.Item] struct {
	repo    repos.IndexRepository[T]
	modelID int64
	count   int
	loaded  bool
}

// reload replaces the index rows with the ids matching predicate.
// On error count and loaded keep their previous values.
func (c *cacheIndex[T]) reload(ctx context.Context, predicate repos.Predicate) (int, error) {
	count, err := c.repo.MaterializeIndex(ctx, c.modelID, predicate)
	if err != nil {
		return c.count, fmt.Errorf("materialize index: %w", err)
	}
	c.count = count
	c.loaded = true
	return count, nil
}

func (c *cacheIndex[T]) clear() {
	c.count = 0
}

func (c *cacheIndex[T]) purge(ctx context.Context) error {
	err := c.repo.PurgeIndex(ctx, c.modelID)
	if err != nil {
		return fmt.Errorf("purge index: %w", err)
	}
	c.count = 0
	c.loaded = false
	return nil
}
