package sqlstore

import (
	"context"
	"fmt"

	"github.com/juho05/crossview"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/nullism/bqb"
)

type albumRepository struct {
	db conn
}

func (a albumRepository) Create(ctx context.Context, params repos.CreateAlbumParams) (string, error) {
	id := crossview.GenIDAlbum()
	if params.ID != nil {
		id = *params.ID
	}
	artistName, err := lookupName(ctx, a.db, "SELECT name FROM artists WHERE id = ?", params.ArtistID)
	if err != nil {
		return "", fmt.Errorf("lookup artist name: %w", err)
	}
	q := bqb.New("INSERT INTO albums (id, title, artist_id, year, search_text) VALUES (?, ?, ?, ?, ?)",
		id, params.Title, params.ArtistID, params.Year, util.SearchText(params.Title, artistName))
	return id, executeQuery(ctx, a.db, q)
}

func (a albumRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Album, error) {
	return selectBatch(ids, func(ids []string) ([]*repos.Album, error) {
		q := bqb.New("SELECT ? FROM albums WHERE albums.id IN (?)", bqb.New(albumSchema.selectList), ids)
		return selectQuery[*repos.Album](ctx, a.db, q)
	})
}
