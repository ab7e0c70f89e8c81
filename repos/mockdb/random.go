package mockdb

import (
	"context"
	"time"

	"github.com/juho05/crossview/repos"
)

type RandomRepository struct {
	RandomSlotCountsMock func(ctx context.Context, modelID int64, slot repos.Slot, notPlayedSince time.Time) (map[int]int, error)
	PickRandomGroupMock  func(ctx context.Context, modelID int64, group repos.Group, notPlayedSince time.Time) (string, bool, error)
	PickRandomMatchMock  func(ctx context.Context, modelID int64, constraint repos.RandomConstraint) (*repos.Track, error)
}

func (r RandomRepository) RandomSlotCounts(ctx context.Context, modelID int64, slot repos.Slot, notPlayedSince time.Time) (map[int]int, error) {
	if r.RandomSlotCountsMock != nil {
		return r.RandomSlotCountsMock(ctx, modelID, slot, notPlayedSince)
	}
	panic("not implemented")
}

func (r RandomRepository) PickRandomGroup(ctx context.Context, modelID int64, group repos.Group, notPlayedSince time.Time) (string, bool, error) {
	if r.PickRandomGroupMock != nil {
		return r.PickRandomGroupMock(ctx, modelID, group, notPlayedSince)
	}
	panic("not implemented")
}

func (r RandomRepository) PickRandomMatch(ctx context.Context, modelID int64, constraint repos.RandomConstraint) (*repos.Track, error) {
	if r.PickRandomMatchMock != nil {
		return r.PickRandomMatchMock(ctx, modelID, constraint)
	}
	panic("not implemented")
}
