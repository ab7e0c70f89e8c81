package mockdb

import (
	"context"

	"github.com/juho05/crossview/repos"
)

type IndexRepository[T repos.Item] struct {
	MaterializeIndexMock  func(ctx context.Context, modelID int64, predicate repos.Predicate) (int, error)
	CountIndexMock        func(ctx context.Context, modelID int64) (int, error)
	FetchWindowMock       func(ctx context.Context, modelID int64, offset, limit int) ([]repos.Ranked[T], error)
	ComputeAggregatesMock func(ctx context.Context, modelID int64) (repos.Aggregates, error)
	ResolveIDsMock        func(ctx context.Context, modelID int64, ranks []int) (map[int]string, error)
	ResolveRanksMock      func(ctx context.Context, modelID int64, ids []string) (map[string]int, error)
	PurgeIndexMock        func(ctx context.Context, modelID int64) error
}

func (i IndexRepository[T]) MaterializeIndex(ctx context.Context, modelID int64, predicate repos.Predicate) (int, error) {
	if i.MaterializeIndexMock != nil {
		return i.MaterializeIndexMock(ctx, modelID, predicate)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) CountIndex(ctx context.Context, modelID int64) (int, error) {
	if i.CountIndexMock != nil {
		return i.CountIndexMock(ctx, modelID)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) FetchWindow(ctx context.Context, modelID int64, offset, limit int) ([]repos.Ranked[T], error) {
	if i.FetchWindowMock != nil {
		return i.FetchWindowMock(ctx, modelID, offset, limit)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) ComputeAggregates(ctx context.Context, modelID int64) (repos.Aggregates, error) {
	if i.ComputeAggregatesMock != nil {
		return i.ComputeAggregatesMock(ctx, modelID)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) ResolveIDs(ctx context.Context, modelID int64, ranks []int) (map[int]string, error) {
	if i.ResolveIDsMock != nil {
		return i.ResolveIDsMock(ctx, modelID, ranks)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) ResolveRanks(ctx context.Context, modelID int64, ids []string) (map[string]int, error) {
	if i.ResolveRanksMock != nil {
		return i.ResolveRanksMock(ctx, modelID, ids)
	}
	panic("not implemented")
}

func (i IndexRepository[T]) PurgeIndex(ctx context.Context, modelID int64) error {
	if i.PurgeIndexMock != nil {
		return i.PurgeIndexMock(ctx, modelID)
	}
	panic("not implemented")
}
