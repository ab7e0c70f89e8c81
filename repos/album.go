package repos

import "context"

// models

type Album struct {
	ID       string  `db:"id"`
	Title    string  `db:"title"`
	ArtistID *string `db:"artist_id"`
	Year     *int    `db:"year"`

	// filled by the resolver after loading
	ArtistName string `db:"-"`
}

func (a *Album) ItemID() string {
	return a.ID
}

// params

type CreateAlbumParams struct {
	ID       *string
	Title    string
	ArtistID *string
	Year     *int
}

// repo

type AlbumRepository interface {
	Create(ctx context.Context, params CreateAlbumParams) (string, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Album, error)
}
