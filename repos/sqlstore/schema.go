package sqlstore

import (
	"context"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/nullism/bqb"
)

// schema describes how the items of one entity are materialized into and
// loaded from cache_entries. Every entity has exactly one static schema.
type schema[T repos.Item] struct {
	name string
	// from is the FROM clause (including joins) sort expressions and conditions are evaluated against.
	from string
	// id is the expression of the item id.
	id string
	// selectList is selected when loading full items.
	selectList string
	// join joins the entity table against cache_entries.
	join        string
	columns     map[repos.SortColumn][]string
	defaultSort []repos.SortKey
	conditions  func(f repos.Filter) *bqb.Query
	// aggregates returns the aggregate query for modelID.
	aggregates func(modelID int64) *bqb.Query
	scanWindow func(ctx context.Context, db conn, q *bqb.Query) ([]repos.Ranked[T], error)
}

func genTrackConditions(f repos.Filter) *bqb.Query {
	where := bqb.New("true")
	if f.Search != "" {
		where.And("?", genSearch(f.Search, "tracks.search_text"))
	}
	if len(f.ArtistIDs) > 0 {
		where.And("tracks.artist_id IN (?)", f.ArtistIDs)
	}
	if len(f.AlbumIDs) > 0 {
		where.And("tracks.album_id IN (?)", f.AlbumIDs)
	}
	if f.MinRating != nil {
		where.And("tracks.rating >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		where.And("tracks.rating <= ?", *f.MaxRating)
	}
	if f.FromYear != nil {
		where.And("(tracks.year IS NOT NULL AND tracks.year >= ?)", *f.FromYear)
	}
	if f.ToYear != nil {
		where.And("(tracks.year IS NOT NULL AND tracks.year <= ?)", *f.ToYear)
	}
	if f.ExcludeStreamErrors {
		where.And("tracks.stream_error = ?", false)
	}
	return where
}

const trackSelectList = `tracks.id, tracks.title, tracks.album_id, tracks.artist_id, tracks.disc_number, tracks.track_number,
	tracks.year, tracks.duration_ms, tracks.file_size, tracks.rating, tracks.score, tracks.play_count, tracks.skip_count,
	tracks.last_played_ms, tracks.last_skipped_ms, tracks.stream_error, tracks.created_ms`

var trackSchema = &schema[*repos.Track]{
	name:       "tracks",
	from:       "tracks LEFT JOIN albums ON albums.id = tracks.album_id LEFT JOIN artists ON artists.id = tracks.artist_id",
	id:         "tracks.id",
	selectList: trackSelectList,
	join:       "JOIN tracks ON tracks.id = cache_entries.item_id",
	columns: map[repos.SortColumn][]string{
		repos.SortByTitle:      {"lower(tracks.title)"},
		repos.SortByArtist:     {"lower(COALESCE(artists.name, ''))"},
		repos.SortByAlbum:      {"lower(COALESCE(albums.title, ''))"},
		repos.SortByYear:       {"COALESCE(tracks.year, 0)"},
		repos.SortByDuration:   {"tracks.duration_ms"},
		repos.SortByFileSize:   {"tracks.file_size"},
		repos.SortByRating:     {"tracks.rating"},
		repos.SortByScore:      {"tracks.score"},
		repos.SortByPlayCount:  {"tracks.play_count"},
		repos.SortByLastPlayed: {"COALESCE(tracks.last_played_ms, 0)"},
		repos.SortByCreated:    {"tracks.created_ms"},
		repos.SortByTrack:      {"COALESCE(tracks.disc_number, 0)", "COALESCE(tracks.track_number, 0)"},
	},
	defaultSort: []repos.SortKey{
		{Column: repos.SortByArtist, Direction: repos.SortAsc},
		{Column: repos.SortByAlbum, Direction: repos.SortAsc},
		{Column: repos.SortByTrack, Direction: repos.SortAsc},
		{Column: repos.SortByTitle, Direction: repos.SortAsc},
	},
	conditions: genTrackConditions,
	aggregates: func(modelID int64) *bqb.Query {
		return bqb.New(`SELECT COUNT(*) AS count,
			CAST(COALESCE(SUM(tracks.duration_ms), 0) AS BIGINT) AS duration_ms,
			CAST(COALESCE(SUM(tracks.file_size), 0) AS BIGINT) AS file_size
			FROM cache_entries JOIN tracks ON tracks.id = cache_entries.item_id
			WHERE cache_entries.model_id = ?`, modelID)
	},
	scanWindow: func(ctx context.Context, db conn, q *bqb.Query) ([]repos.Ranked[*repos.Track], error) {
		type rankedTrack struct {
			Ordinal int `db:"ordinal"`
			repos.Track
		}
		rows, err := selectQuery[*rankedTrack](ctx, db, q)
		if err != nil {
			return nil, err
		}
		return util.Map(rows, func(r *rankedTrack) repos.Ranked[*repos.Track] {
			return repos.Ranked[*repos.Track]{Rank: r.Ordinal, Item: &r.Track}
		}), nil
	},
}

var albumSchema = &schema[*repos.Album]{
	name:       "albums",
	from:       "albums LEFT JOIN artists ON artists.id = albums.artist_id",
	id:         "albums.id",
	selectList: "albums.id, albums.title, albums.artist_id, albums.year",
	join:       "JOIN albums ON albums.id = cache_entries.item_id",
	columns: map[repos.SortColumn][]string{
		repos.SortByTitle:  {"lower(albums.title)"},
		repos.SortByArtist: {"lower(COALESCE(artists.name, ''))"},
		repos.SortByYear:   {"COALESCE(albums.year, 0)"},
	},
	defaultSort: []repos.SortKey{
		{Column: repos.SortByArtist, Direction: repos.SortAsc},
		{Column: repos.SortByYear, Direction: repos.SortAsc},
		{Column: repos.SortByTitle, Direction: repos.SortAsc},
	},
	conditions: func(f repos.Filter) *bqb.Query {
		return bqb.New("EXISTS (SELECT 1 FROM tracks WHERE tracks.album_id = albums.id AND ?)", genTrackConditions(f))
	},
	aggregates: func(modelID int64) *bqb.Query {
		return bqb.New(`SELECT (SELECT COUNT(*) FROM cache_entries WHERE cache_entries.model_id = ?) AS count,
			CAST(COALESCE(SUM(tracks.duration_ms), 0) AS BIGINT) AS duration_ms,
			CAST(COALESCE(SUM(tracks.file_size), 0) AS BIGINT) AS file_size
			FROM cache_entries JOIN tracks ON tracks.album_id = cache_entries.item_id
			WHERE cache_entries.model_id = ?`, modelID, modelID)
	},
	scanWindow: func(ctx context.Context, db conn, q *bqb.Query) ([]repos.Ranked[*repos.Album], error) {
		type rankedAlbum struct {
			Ordinal int `db:"ordinal"`
			repos.Album
		}
		rows, err := selectQuery[*rankedAlbum](ctx, db, q)
		if err != nil {
			return nil, err
		}
		return util.Map(rows, func(r *rankedAlbum) repos.Ranked[*repos.Album] {
			return repos.Ranked[*repos.Album]{Rank: r.Ordinal, Item: &r.Album}
		}), nil
	},
}

var artistSchema = &schema[*repos.Artist]{
	name:       "artists",
	from:       "artists",
	id:         "artists.id",
	selectList: "artists.id, artists.name",
	join:       "JOIN artists ON artists.id = cache_entries.item_id",
	columns: map[repos.SortColumn][]string{
		repos.SortByName: {"lower(artists.name)"},
	},
	defaultSort: []repos.SortKey{
		{Column: repos.SortByName, Direction: repos.SortAsc},
	},
	conditions: func(f repos.Filter) *bqb.Query {
		return bqb.New("EXISTS (SELECT 1 FROM tracks WHERE tracks.artist_id = artists.id AND ?)", genTrackConditions(f))
	},
	aggregates: func(modelID int64) *bqb.Query {
		return bqb.New(`SELECT (SELECT COUNT(*) FROM cache_entries WHERE cache_entries.model_id = ?) AS count,
			CAST(COALESCE(SUM(tracks.duration_ms), 0) AS BIGINT) AS duration_ms,
			CAST(COALESCE(SUM(tracks.file_size), 0) AS BIGINT) AS file_size
			FROM cache_entries JOIN tracks ON tracks.artist_id = cache_entries.item_id
			WHERE cache_entries.model_id = ?`, modelID, modelID)
	},
	scanWindow: func(ctx context.Context, db conn, q *bqb.Query) ([]repos.Ranked[*repos.Artist], error) {
		type rankedArtist struct {
			Ordinal int `db:"ordinal"`
			repos.Artist
		}
		rows, err := selectQuery[*rankedArtist](ctx, db, q)
		if err != nil {
			return nil, err
		}
		return util.Map(rows, func(r *rankedArtist) repos.Ranked[*repos.Artist] {
			return repos.Ranked[*repos.Artist]{Rank: r.Ordinal, Item: &r.Artist}
		}), nil
	},
}

// genOrderBy renders the ORDER BY expressions of sort. The item id is always
// appended so that the order is total and reloads are reproducible.
func (s *schema[T]) genOrderBy(sort []repos.SortKey) (*bqb.Query, error) {
	if len(sort) == 0 {
		sort = s.defaultSort
	}
	orderBy := bqb.Optional("")
	for _, key := range sort {
		exprs, ok := s.columns[key.Column]
		if !ok {
			return nil, repos.NewError("cannot sort "+s.name+" by "+string(key.Column), repos.ErrInvalidParams, nil)
		}
		direction := "ASC"
		if key.Direction == repos.SortDesc {
			direction = "DESC"
		}
		for _, e := range exprs {
			orderBy.Comma(e + " " + direction)
		}
	}
	orderBy.Comma(s.id + " ASC")
	return orderBy, nil
}
