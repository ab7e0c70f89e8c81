package mockdb

import (
	"context"

	"github.com/juho05/crossview/repos"
)

type AlbumRepository struct {
	CreateMock    func(ctx context.Context, params repos.CreateAlbumParams) (string, error)
	FindByIDsMock func(ctx context.Context, ids []string) ([]*repos.Album, error)
}

func (a AlbumRepository) Create(ctx context.Context, params repos.CreateAlbumParams) (string, error) {
	if a.CreateMock != nil {
		return a.CreateMock(ctx, params)
	}
	panic("not implemented")
}

func (a AlbumRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Album, error) {
	if a.FindByIDsMock != nil {
		return a.FindByIDsMock(ctx, ids)
	}
	panic("not implemented")
}
