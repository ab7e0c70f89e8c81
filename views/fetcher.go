package views

import (
	"context"
	"fmt"

	"github.com/juho05/crossview/repos"
)

const (
	DefaultFetchWindowMin        = 100
	DefaultFetchWindowMultiplier = 5
)

// fetcher loads items of the index in windows of contiguous ranks and keeps
// them resident until clear is called.
type fetcher[T repos.Item] struct {
	repo       repos.IndexRepository[T]
	modelID    int64
	resolve    func(ctx context.Context, items []T)
	windowMin  int
	multiplier int
	windowSize int
	resident   map[int]T
}

func newFetcher[T repos.Item](repo repos.IndexRepository[T], modelID int64, resolve func(ctx context.Context, items []T), windowMin, multiplier int) *fetcher[T] {
	if windowMin <= 0 {
		windowMin = DefaultFetchWindowMin
	}
	if multiplier <= 0 {
		multiplier = DefaultFetchWindowMultiplier
	}
	return &fetcher[T]{
		repo:       repo,
		modelID:    modelID,
		resolve:    resolve,
		windowMin:  windowMin,
		multiplier: multiplier,
		windowSize: windowMin,
		resident:   make(map[int]T),
	}
}

func (f *fetcher[T]) setVisibleRows(rows int) {
	f.windowSize = max(rows*f.multiplier, f.windowMin)
}

func (f *fetcher[T]) lookup(rank int) (T, bool) {
	item, ok := f.resident[rank]
	return item, ok
}

// get returns the item at rank. If it is not resident, the window starting
// at rank is loaded and merged into the resident items.
func (f *fetcher[T]) get(ctx context.Context, rank, count int) (T, error) {
	if item, ok := f.resident[rank]; ok {
		return item, nil
	}
	limit := min(f.windowSize, count-rank)
	window, err := f.repo.FetchWindow(ctx, f.modelID, rank, limit)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetch window [%d, %d): %w", rank, rank+limit, err)
	}
	if f.resolve != nil && len(window) > 0 {
		items := make([]T, len(window))
		for i, r := range window {
			items[i] = r.Item
		}
		f.resolve(ctx, items)
	}
	for _, r := range window {
		if _, ok := f.resident[r.Rank]; !ok {
			f.resident[r.Rank] = r.Item
		}
	}
	item, ok := f.resident[rank]
	if !ok {
		var zero T
		return zero, repos.NewError(fmt.Sprintf("rank %d missing from index of model %d", rank, f.modelID), repos.ErrNotFound, nil)
	}
	return item, nil
}

func (f *fetcher[T]) clear() {
	clear(f.resident)
}
