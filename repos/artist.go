package repos

import "context"

// models

type Artist struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (a *Artist) ItemID() string {
	return a.ID
}

// params

type CreateArtistParams struct {
	ID   *string
	Name string
}

// repo

type ArtistRepository interface {
	Create(ctx context.Context, params CreateArtistParams) (string, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Artist, error)
}
