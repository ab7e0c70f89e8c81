package views

import (
	"context"
	"fmt"

	"github.com/juho05/crossview/repos"
)

type Options struct {
	FetchWindowMin        int
	FetchWindowMultiplier int
	ResolverCacheSize     int
}

// Library owns the state shared by all views of one database: the model id
// allocator, the name resolver and the dependency graph.
type Library struct {
	db       repos.DB
	ids      *IDAllocator
	resolver *Resolver
	graph    *Graph
	opts     Options
}

// NewLibrary creates a library for db. Model ids start after the highest id
// that still owns index rows in db.
func NewLibrary(ctx context.Context, db repos.DB, opts Options) (*Library, error) {
	maxID, err := db.MaxModelID(ctx)
	if err != nil {
		return nil, fmt.Errorf("new library: %w", err)
	}
	resolver, err := NewResolver(db, opts.ResolverCacheSize)
	if err != nil {
		return nil, fmt.Errorf("new library: %w", err)
	}
	return &Library{
		db:       db,
		ids:      NewIDAllocator(maxID + 1),
		resolver: resolver,
		graph:    NewGraph(),
		opts:     opts,
	}, nil
}

func (l *Library) DB() repos.DB {
	return l.db
}

func (l *Library) Resolver() *Resolver {
	return l.resolver
}

func (l *Library) Graph() *Graph {
	return l.graph
}

func (l *Library) NewTrackModel() *Model[*repos.Track] {
	return newModel(l.ids.Next(), modelOptions[*repos.Track]{
		name:                  "track",
		repo:                  l.db.TrackIndex(),
		resolve:               l.resolver.ResolveTracks,
		fetchWindowMin:        l.opts.FetchWindowMin,
		fetchWindowMultiplier: l.opts.FetchWindowMultiplier,
	})
}

func (l *Library) NewAlbumModel() *Model[*repos.Album] {
	return newModel(l.ids.Next(), modelOptions[*repos.Album]{
		name:                  "album",
		repo:                  l.db.AlbumIndex(),
		resolve:               l.resolver.ResolveAlbums,
		fetchWindowMin:        l.opts.FetchWindowMin,
		fetchWindowMultiplier: l.opts.FetchWindowMultiplier,
	})
}

func (l *Library) NewArtistModel() *Model[*repos.Artist] {
	return newModel(l.ids.Next(), modelOptions[*repos.Artist]{
		name:                  "artist",
		repo:                  l.db.ArtistIndex(),
		fetchWindowMin:        l.opts.FetchWindowMin,
		fetchWindowMultiplier: l.opts.FetchWindowMultiplier,
	})
}

// LinkByArtist makes albums and tracks show the items of the artists selected in artists.
// If no artist is selected, the filters are not restricted by artist.
func (l *Library) LinkByArtist(artists *Model[*repos.Artist], dependents ...FilterNode) error {
	for _, d := range dependents {
		err := l.graph.AddDependency(d, func(ctx context.Context) error {
			ids, err := artists.SelectedIDs(ctx)
			if err != nil {
				return err
			}
			filter := d.Predicate().Filter
			filter.ArtistIDs = ids
			d.SetFilter(filter)
			return nil
		}, artists)
		if err != nil {
			return fmt.Errorf("link by artist: %w", err)
		}
	}
	return nil
}

// LinkByAlbum makes tracks show the tracks of the albums selected in albums.
func (l *Library) LinkByAlbum(albums *Model[*repos.Album], dependents ...FilterNode) error {
	for _, d := range dependents {
		err := l.graph.AddDependency(d, func(ctx context.Context) error {
			ids, err := albums.SelectedIDs(ctx)
			if err != nil {
				return err
			}
			filter := d.Predicate().Filter
			filter.AlbumIDs = ids
			d.SetFilter(filter)
			return nil
		}, albums)
		if err != nil {
			return fmt.Errorf("link by album: %w", err)
		}
	}
	return nil
}

// FilterNode is a Node whose filter can be derived from other views.
type FilterNode interface {
	Node
	Predicate() repos.Predicate
	SetFilter(filter repos.Filter)
}
