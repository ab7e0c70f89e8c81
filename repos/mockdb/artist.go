package mockdb

import (
	"context"

	"github.com/juho05/crossview/repos"
)

type ArtistRepository struct {
	CreateMock    func(ctx context.Context, params repos.CreateArtistParams) (string, error)
	FindByIDsMock func(ctx context.Context, ids []string) ([]*repos.Artist, error)
}

func (a ArtistRepository) Create(ctx context.Context, params repos.CreateArtistParams) (string, error) {
	if a.CreateMock != nil {
		return a.CreateMock(ctx, params)
	}
	panic("not implemented")
}

func (a ArtistRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Artist, error) {
	if a.FindByIDsMock != nil {
		return a.FindByIDsMock(ctx, ids)
	}
	panic("not implemented")
}
