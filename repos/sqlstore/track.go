package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juho05/crossview"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/nullism/bqb"
)

type trackRepository struct {
	db conn
}

func (t trackRepository) Create(ctx context.Context, params repos.CreateTrackParams) (string, error) {
	id := crossview.GenIDTrack()
	if params.ID != nil {
		id = *params.ID
	}
	albumTitle, err := lookupName(ctx, t.db, "SELECT title FROM albums WHERE id = ?", params.AlbumID)
	if err != nil {
		return "", fmt.Errorf("lookup album title: %w", err)
	}
	artistName, err := lookupName(ctx, t.db, "SELECT name FROM artists WHERE id = ?", params.ArtistID)
	if err != nil {
		return "", fmt.Errorf("lookup artist name: %w", err)
	}
	q := bqb.New(`INSERT INTO tracks
		(id, title, album_id, artist_id, disc_number, track_number, year, duration_ms, file_size, rating, score,
		last_played_ms, last_skipped_ms, stream_error, created_ms, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Title, params.AlbumID, params.ArtistID, params.DiscNumber, params.TrackNumber, params.Year, params.Duration,
		params.FileSize, params.Rating, params.Score, params.LastPlayed, params.LastSkipped, params.StreamError, nowMS(),
		util.SearchText(params.Title, artistName, albumTitle))
	return id, executeQuery(ctx, t.db, q)
}

func (t trackRepository) FindByID(ctx context.Context, id string) (*repos.Track, error) {
	q := bqb.New("SELECT ? FROM tracks WHERE tracks.id = ?", bqb.New(trackSelectList), id)
	return getQuery[*repos.Track](ctx, t.db, q)
}

func (t trackRepository) FindByIDs(ctx context.Context, ids []string) ([]*repos.Track, error) {
	return selectBatch(ids, func(ids []string) ([]*repos.Track, error) {
		q := bqb.New("SELECT ? FROM tracks WHERE tracks.id IN (?)", bqb.New(trackSelectList), ids)
		return selectQuery[*repos.Track](ctx, t.db, q)
	})
}

func (t trackRepository) MarkPlayed(ctx context.Context, id string, at time.Time) error {
	q := bqb.New("UPDATE tracks SET play_count = play_count + 1, last_played_ms = ? WHERE id = ?", at.UnixMilli(), id)
	return executeQueryExpectAffectedRows(ctx, t.db, q)
}

func (t trackRepository) MarkSkipped(ctx context.Context, id string, at time.Time) error {
	q := bqb.New("UPDATE tracks SET skip_count = skip_count + 1, last_skipped_ms = ? WHERE id = ?", at.UnixMilli(), id)
	return executeQueryExpectAffectedRows(ctx, t.db, q)
}

func (t trackRepository) SetRating(ctx context.Context, id string, rating int) error {
	if rating < 0 || rating > 5 {
		return repos.NewError(fmt.Sprintf("rating %d out of range [0, 5]", rating), repos.ErrInvalidParams, nil)
	}
	return executeQueryExpectAffectedRows(ctx, t.db, bqb.New("UPDATE tracks SET rating = ? WHERE id = ?", rating, id))
}

func (t trackRepository) SetScore(ctx context.Context, id string, score int) error {
	if score < 0 || score > 100 {
		return repos.NewError(fmt.Sprintf("score %d out of range [0, 100]", score), repos.ErrInvalidParams, nil)
	}
	return executeQueryExpectAffectedRows(ctx, t.db, bqb.New("UPDATE tracks SET score = ? WHERE id = ?", score, id))
}

func (t trackRepository) SetStreamError(ctx context.Context, id string, streamError bool) error {
	return executeQueryExpectAffectedRows(ctx, t.db, bqb.New("UPDATE tracks SET stream_error = ? WHERE id = ?", streamError, id))
}

func (t trackRepository) Count(ctx context.Context) (int, error) {
	return getQuery[int](ctx, t.db, bqb.New("SELECT COUNT(tracks.id) FROM tracks"))
}

// lookupName returns the single string selected by query for id or "" if id is nil or unknown.
func lookupName(ctx context.Context, db conn, query string, id *string) (string, error) {
	if id == nil {
		return "", nil
	}
	name, err := getQuery[string](ctx, db, bqb.New(query, *id))
	if errors.Is(err, repos.ErrNotFound) {
		return "", nil
	}
	return name, err
}
