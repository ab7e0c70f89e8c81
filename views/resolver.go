package views

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/log"
)

const DefaultResolverCacheSize = 512

// Resolver fills the derived name fields of loaded items.
// Album titles and artist names are cached in bounded LRU caches.
type Resolver struct {
	db          repos.DB
	albumTitles *lru.Cache[string, string]
	artistNames *lru.Cache[string, string]
}

func NewResolver(db repos.DB, size int) (*Resolver, error) {
	if size <= 0 {
		size = DefaultResolverCacheSize
	}
	albumTitles, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}
	artistNames, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}
	return &Resolver{
		db:          db,
		albumTitles: albumTitles,
		artistNames: artistNames,
	}, nil
}

// ResolveTracks sets AlbumTitle and ArtistName of tracks.
// Lookup failures are logged and leave the fields empty.
func (r *Resolver) ResolveTracks(ctx context.Context, tracks []*repos.Track) {
	albumIDs := make([]string, 0, len(tracks))
	artistIDs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.AlbumID != nil {
			albumIDs = append(albumIDs, *t.AlbumID)
		}
		if t.ArtistID != nil {
			artistIDs = append(artistIDs, *t.ArtistID)
		}
	}
	r.loadAlbums(ctx, albumIDs)
	r.loadArtists(ctx, artistIDs)
	for _, t := range tracks {
		if t.AlbumID != nil {
			t.AlbumTitle, _ = r.albumTitles.Get(*t.AlbumID)
		}
		if t.ArtistID != nil {
			t.ArtistName, _ = r.artistNames.Get(*t.ArtistID)
		}
	}
}

// ResolveAlbums sets ArtistName of albums.
func (r *Resolver) ResolveAlbums(ctx context.Context, albums []*repos.Album) {
	artistIDs := make([]string, 0, len(albums))
	for _, a := range albums {
		if a.ArtistID != nil {
			artistIDs = append(artistIDs, *a.ArtistID)
		}
	}
	r.loadArtists(ctx, artistIDs)
	for _, a := range albums {
		if a.ArtistID != nil {
			a.ArtistName, _ = r.artistNames.Get(*a.ArtistID)
		}
	}
}

// Invalidate drops all cached names. It must be called after albums or artists were renamed.
func (r *Resolver) Invalidate() {
	r.albumTitles.Purge()
	r.artistNames.Purge()
}

func (r *Resolver) loadAlbums(ctx context.Context, ids []string) {
	missing := uncached(r.albumTitles, ids)
	if len(missing) == 0 {
		return
	}
	albums, err := r.db.Album().FindByIDs(ctx, missing)
	if err != nil {
		log.Warnf("resolve album titles: %s", err)
		return
	}
	for _, a := range albums {
		r.albumTitles.Add(a.ID, a.Title)
	}
}

func (r *Resolver) loadArtists(ctx context.Context, ids []string) {
	missing := uncached(r.artistNames, ids)
	if len(missing) == 0 {
		return
	}
	artists, err := r.db.Artist().FindByIDs(ctx, missing)
	if err != nil {
		log.Warnf("resolve artist names: %s", err)
		return
	}
	for _, a := range artists {
		r.artistNames.Add(a.ID, a.Name)
	}
}

// uncached returns the distinct ids that are not in cache.
func uncached(cache *lru.Cache[string, string], ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	missing := make([]string, 0)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if !cache.Contains(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
