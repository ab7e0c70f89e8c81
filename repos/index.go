package repos

import (
	"context"
	"time"
)

// Item is implemented by every entity that can be listed in a view.
type Item interface {
	ItemID() string
}

// Ranked is an item together with its rank in the materialized index of a view.
type Ranked[T any] struct {
	Rank int
	Item T
}

type Aggregates struct {
	Count    int        `db:"count"`
	Duration DurationMS `db:"duration_ms"`
	FileSize int64      `db:"file_size"`
}

// IndexRepository materializes and reads the ordered item lists of views.
// Index rows are scoped by model id.
type IndexRepository[T Item] interface {
	// MaterializeIndex atomically replaces all index rows of modelID with the
	// ids matching predicate in sort order and returns the new row count.
	// On error the previous rows are left untouched.
	MaterializeIndex(ctx context.Context, modelID int64, predicate Predicate) (int, error)
	CountIndex(ctx context.Context, modelID int64) (int, error)
	// FetchWindow returns the items with ranks in [offset, offset+limit) ordered by rank.
	FetchWindow(ctx context.Context, modelID int64, offset, limit int) ([]Ranked[T], error)
	ComputeAggregates(ctx context.Context, modelID int64) (Aggregates, error)

	ResolveIDs(ctx context.Context, modelID int64, ranks []int) (map[int]string, error)
	ResolveRanks(ctx context.Context, modelID int64, ids []string) (map[string]int, error)

	PurgeIndex(ctx context.Context, modelID int64) error
}

// Slot is a discretization of tracks used by weighted random selection.
type Slot string

const (
	// SlotRating has 5 slots: rating-1, unrated tracks count as rating 3.
	SlotRating Slot = "rating"
	// SlotScore has 20 slots of width 5 over the score range 0-100.
	SlotScore Slot = "score"
)

func (s Slot) Count() int {
	switch s {
	case SlotRating:
		return 5
	case SlotScore:
		return 20
	}
	return 0
}

// Group is a property tracks are grouped by for group-wise random selection.
type Group string

const (
	GroupAlbum  Group = "album"
	GroupArtist Group = "artist"
)

type SlotValue struct {
	Slot  Slot
	Value int
}

// RandomConstraint restricts PickRandomMatch.
// Tracks with a stream error or played/skipped after NotPlayedSince never match
// (see Track.Eligible for the millisecond boundary).
// If GroupID is set, the first matching track of the group ordered by
// disc and track number is returned instead of a random one.
type RandomConstraint struct {
	NotPlayedSince time.Time
	Slot           *SlotValue
	Group          Group
	GroupID        *string
}

type RandomRepository interface {
	RandomSlotCounts(ctx context.Context, modelID int64, slot Slot, notPlayedSince time.Time) (map[int]int, error)
	// PickRandomGroup returns a uniformly chosen id among the groups with at least one eligible track.
	PickRandomGroup(ctx context.Context, modelID int64, group Group, notPlayedSince time.Time) (string, bool, error)
	// PickRandomMatch returns nil if no track matches.
	PickRandomMatch(ctx context.Context, modelID int64, constraint RandomConstraint) (*Track, error)
}
