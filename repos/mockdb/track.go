package mockdb

import (
	"context"
	"time"

	"github.com/juho05/crossview/repos"
)

type TrackRepository struct {
	CreateMock         func(ctx context.Context, params repos.CreateTrackParams) (string, error)
	FindByIDMock       func(ctx context.Context, id string) (*repos.Track, error)
	FindByIDsMock      func(ctx context.Context, ids []string) ([]*repos.Track, error)
	MarkPlayedMock     func(ctx context.Context, id string, at time.Time) error
	MarkSkippedMock    func(ctx context.Context, id string, at time.Time) error
	SetRatingMock      func(ctx context.Context, id string, rating int) error
	SetScoreMock       func(ctx context.Context, id string, score int) error
	SetStreamErrorMock func(ctx context.Context, id string, streamError bool) error
	CountMock          func(ctx context.Context) (int, error)
}

func (t TrackRepository) Create(ctx context.Context, params repos.CreateTrackParams) (string, error) {
	if t.CreateMock != nil {
		return t.CreateMock(ctx, params)
	}
	panic("not implemented")
}

func (t TrackRepository) FindByID(ctx context.Context, id string) (*repos.Track, error) {
	if t.FindByIDMock != nil {
		return t.FindByIDMock(ctx, id)
	}
	panic("not implemented")
}

func (t TrackRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Track, error) {
	if t.FindByIDsMock != nil {
		return t.FindByIDsMock(ctx, ids)
	}
	panic("not implemented")
}

func (t TrackRepository) MarkPlayed(ctx context.Context, id string, at time.Time) error {
	if t.MarkPlayedMock != nil {
		return t.MarkPlayedMock(ctx, id, at)
	}
	panic("not implemented")
}

func (t TrackRepository) MarkSkipped(ctx context.Context, id string, at time.Time) error {
	if t.MarkSkippedMock != nil {
		return t.MarkSkippedMock(ctx, id, at)
	}
	panic("not implemented")
}

func (t TrackRepository) SetRating(ctx context.Context, id string, rating int) error {
	if t.SetRatingMock != nil {
		return t.SetRatingMock(ctx, id, rating)
	}
	panic("not implemented")
}

func (t TrackRepository) SetScore(ctx context.Context, id string, score int) error {
	if t.SetScoreMock != nil {
		return t.SetScoreMock(ctx, id, score)
	}
	panic("not implemented")
}

func (t TrackRepository) SetStreamError(ctx context.Context, id string, streamError bool) error {
	if t.SetStreamErrorMock != nil {
		return t.SetStreamErrorMock(ctx, id, streamError)
	}
	panic("not implemented")
}

func (t TrackRepository) Count(ctx context.Context) (int, error) {
	if t.CountMock != nil {
		return t.CountMock(ctx)
	}
	panic("not implemented")
}
