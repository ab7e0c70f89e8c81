package sqlstore

import (
	"context"

	"github.com/juho05/crossview"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/nullism/bqb"
)

type artistRepository struct {
	db conn
}

func (a artistRepository) Create(ctx context.Context, params repos.CreateArtistParams) (string, error) {
	id := crossview.GenIDArtist()
	if params.ID != nil {
		id = *params.ID
	}
	q := bqb.New("INSERT INTO artists (id, name, search_text) VALUES (?, ?, ?)", id, params.Name, util.SearchText(params.Name))
	return id, executeQuery(ctx, a.db, q)
}

func (a artistRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Artist, error) {
	return selectBatch(ids, func(ids []string) ([]*repos.Artist, error) {
		q := bqb.New("SELECT ? FROM artists WHERE artists.id IN (?)", bqb.New(artistSchema.selectList), ids)
		return selectQuery[*repos.Artist](ctx, a.db, q)
	})
}
