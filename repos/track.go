package repos

import (
	"context"
	"time"
)

// models

type Track struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	AlbumID     *string    `db:"album_id"`
	ArtistID    *string    `db:"artist_id"`
	DiscNumber  *int       `db:"disc_number"`
	TrackNumber *int       `db:"track_number"`
	Year        *int       `db:"year"`
	Duration    DurationMS `db:"duration_ms"`
	FileSize    int64      `db:"file_size"`
	Rating      int        `db:"rating"`
	Score       int        `db:"score"`
	PlayCount   int        `db:"play_count"`
	SkipCount   int        `db:"skip_count"`
	LastPlayed  NullUnixMS `db:"last_played_ms"`
	LastSkipped NullUnixMS `db:"last_skipped_ms"`
	StreamError bool       `db:"stream_error"`
	Created     UnixMS     `db:"created_ms"`

	// filled by the resolver after loading
	AlbumTitle string `db:"-"`
	ArtistName string `db:"-"`
}

func (t *Track) ItemID() string {
	return t.ID
}

// Eligible reports whether t may be picked by a random selection that
// excludes tracks played or skipped after notPlayedSince. A play or skip in the
// millisecond of notPlayedSince counts as after it.
func (t *Track) Eligible(notPlayedSince time.Time) bool {
	return !t.StreamError && !t.LastPlayed.SinceMilli(notPlayedSince) && !t.LastSkipped.SinceMilli(notPlayedSince)
}

// params

type CreateTrackParams struct {
	ID          *string
	Title       string
	AlbumID     *string
	ArtistID    *string
	DiscNumber  *int
	TrackNumber *int
	Year        *int
	Duration    DurationMS
	FileSize    int64
	Rating      int
	Score       int
	LastPlayed  NullUnixMS
	LastSkipped NullUnixMS
	StreamError bool
}

// repo

type TrackRepository interface {
	Create(ctx context.Context, params CreateTrackParams) (string, error)
	FindByID(ctx context.Context, id string) (*Track, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Track, error)

	MarkPlayed(ctx context.Context, id string, at time.Time) error
	MarkSkipped(ctx context.Context, id string, at time.Time) error
	SetRating(ctx context.Context, id string, rating int) error
	SetScore(ctx context.Context, id string, score int) error
	SetStreamError(ctx context.Context, id string, streamError bool) error

	Count(ctx context.Context) (int, error)
}
