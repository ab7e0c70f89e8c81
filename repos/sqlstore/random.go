package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/nullism/bqb"
)

type randomRepository struct {
	db conn
}

var slotExpressions = map[repos.Slot]string{
	repos.SlotRating: "(CASE WHEN tracks.rating BETWEEN 1 AND 5 THEN tracks.rating - 1 ELSE 2 END)",
	repos.SlotScore:  "(CASE WHEN tracks.score >= 95 THEN 19 WHEN tracks.score <= 0 THEN 0 ELSE tracks.score / 5 END)",
}

var groupColumns = map[repos.Group]string{
	repos.GroupAlbum:  "tracks.album_id",
	repos.GroupArtist: "tracks.artist_id",
}

// genEligible matches the index rows of modelID whose track has no stream error
// and was neither played nor skipped since notPlayedSince. Times are stored in
// milliseconds, so a play in the millisecond of notPlayedSince counts as after it
// (see repos.Track.Eligible).
func genEligible(modelID int64, notPlayedSince time.Time) *bqb.Query {
	ms := notPlayedSince.UnixMilli()
	return bqb.New(`cache_entries.model_id = ? AND tracks.stream_error = ?
		AND (tracks.last_played_ms IS NULL OR tracks.last_played_ms < ?)
		AND (tracks.last_skipped_ms IS NULL OR tracks.last_skipped_ms < ?)`, modelID, false, ms, ms)
}

func (r randomRepository) RandomSlotCounts(ctx context.Context, modelID int64, slot repos.Slot, notPlayedSince time.Time) (map[int]int, error) {
	expr, ok := slotExpressions[slot]
	if !ok {
		return nil, repos.NewError("unknown slot "+string(slot), repos.ErrInvalidParams, nil)
	}
	q := bqb.New(`SELECT ? AS slot, COUNT(*) AS count FROM cache_entries JOIN tracks ON tracks.id = cache_entries.item_id
		WHERE ? GROUP BY ?`, bqb.New(expr), genEligible(modelID, notPlayedSince), bqb.New(expr))
	type slotCount struct {
		Slot  int `db:"slot"`
		Count int `db:"count"`
	}
	rows, err := selectQuery[slotCount](ctx, r.db, q)
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Slot] = row.Count
	}
	return counts, nil
}

func (r randomRepository) PickRandomGroup(ctx context.Context, modelID int64, group repos.Group, notPlayedSince time.Time) (string, bool, error) {
	column, ok := groupColumns[group]
	if !ok {
		return "", false, repos.NewError("unknown group "+string(group), repos.ErrInvalidParams, nil)
	}
	q := bqb.New(`SELECT ? FROM cache_entries JOIN tracks ON tracks.id = cache_entries.item_id
		WHERE ? AND ? IS NOT NULL GROUP BY ? ORDER BY random() LIMIT 1`,
		bqb.New(column), genEligible(modelID, notPlayedSince), bqb.New(column), bqb.New(column))
	id, err := getQuery[string](ctx, r.db, q)
	if errors.Is(err, repos.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r randomRepository) PickRandomMatch(ctx context.Context, modelID int64, constraint repos.RandomConstraint) (*repos.Track, error) {
	where := bqb.New("?", genEligible(modelID, constraint.NotPlayedSince))
	if constraint.Slot != nil {
		expr, ok := slotExpressions[constraint.Slot.Slot]
		if !ok {
			return nil, repos.NewError("unknown slot "+string(constraint.Slot.Slot), repos.ErrInvalidParams, nil)
		}
		where.And("? = ?", bqb.New(expr), constraint.Slot.Value)
	}
	orderBy := bqb.New("random()")
	if constraint.GroupID != nil {
		column, ok := groupColumns[constraint.Group]
		if !ok {
			return nil, repos.NewError("unknown group "+string(constraint.Group), repos.ErrInvalidParams, nil)
		}
		where.And("? = ?", bqb.New(column), *constraint.GroupID)
		orderBy = bqb.New("COALESCE(tracks.disc_number, 0), COALESCE(tracks.track_number, 0), lower(tracks.title), tracks.id")
	}
	q := bqb.New(`SELECT ? FROM cache_entries JOIN tracks ON tracks.id = cache_entries.item_id
		WHERE ? ORDER BY ? LIMIT 1`, bqb.New(trackSelectList), where, orderBy)
	tracks, err := selectQuery[*repos.Track](ctx, r.db, q)
	if err != nil {
		return nil, err
	}
	if t := util.FirstOrNil(tracks); t != nil {
		return *t, nil
	}
	return nil, nil
}
