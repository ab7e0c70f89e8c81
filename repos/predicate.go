package repos

import (
	"slices"

	"github.com/juho05/crossview/util"
)

// Filter selects the tracks a view is built from. Album and artist views
// contain every album/artist that owns at least one matching track.
type Filter struct {
	Search string

	ArtistIDs []string
	AlbumIDs  []string

	MinRating *int
	MaxRating *int

	FromYear *int
	ToYear   *int

	ExcludeStreamErrors bool
}

func (f Filter) Equal(other Filter) bool {
	return f.Search == other.Search &&
		slices.Equal(f.ArtistIDs, other.ArtistIDs) &&
		slices.Equal(f.AlbumIDs, other.AlbumIDs) &&
		util.EqPtrVals(f.MinRating, other.MinRating) &&
		util.EqPtrVals(f.MaxRating, other.MaxRating) &&
		util.EqPtrVals(f.FromYear, other.FromYear) &&
		util.EqPtrVals(f.ToYear, other.ToYear) &&
		f.ExcludeStreamErrors == other.ExcludeStreamErrors
}

type SortColumn string

const (
	SortByTitle      SortColumn = "title"
	SortByName       SortColumn = "name"
	SortByArtist     SortColumn = "artist"
	SortByAlbum      SortColumn = "album"
	SortByYear       SortColumn = "year"
	SortByDuration   SortColumn = "duration"
	SortByFileSize   SortColumn = "fileSize"
	SortByRating     SortColumn = "rating"
	SortByScore      SortColumn = "score"
	SortByPlayCount  SortColumn = "playCount"
	SortByLastPlayed SortColumn = "lastPlayed"
	SortByCreated    SortColumn = "created"
	SortByTrack      SortColumn = "track"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

type SortKey struct {
	Column    SortColumn
	Direction SortDirection
}

// Predicate is the complete description of a view: which items it contains
// and in which order.
type Predicate struct {
	Filter Filter
	Sort   []SortKey
}

func (p Predicate) Equal(other Predicate) bool {
	return p.Filter.Equal(other.Filter) && slices.Equal(p.Sort, other.Sort)
}

// Clone returns a deep copy of p.
func (p Predicate) Clone() Predicate {
	p.Filter.ArtistIDs = slices.Clone(p.Filter.ArtistIDs)
	p.Filter.AlbumIDs = slices.Clone(p.Filter.AlbumIDs)
	p.Sort = slices.Clone(p.Sort)
	return p
}
