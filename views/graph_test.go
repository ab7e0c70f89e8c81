package views

import (
	"context"
	"errors"
	"testing"

	"github.com/juho05/crossview/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	id      int64
	version uint64
	reloads int
	err     error
	log     *[]int64
}

func (f *fakeNode) CacheID() int64 {
	return f.id
}

func (f *fakeNode) Version() uint64 {
	return f.version
}

func (f *fakeNode) Reload(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.reloads++
	f.version++
	*f.log = append(*f.log, f.id)
	return nil
}

func TestGraph_Update(t *testing.T) {
	ctx := context.Background()
	var reloads []int64
	node := func(id int64) *fakeNode {
		return &fakeNode{id: id, log: &reloads}
	}
	// a -> b -> d, a -> c -> d
	a, b, c, d := node(1), node(2), node(3), node(4)
	g := NewGraph()
	applied := make(map[int64]int)
	apply := func(n *fakeNode) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			applied[n.id]++
			return nil
		}
	}
	require.NoError(t, g.AddDependency(d, apply(d), b, c))
	require.NoError(t, g.AddDependency(b, apply(b), a))
	require.NoError(t, g.AddDependency(c, apply(c), a))

	n, err := g.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, reloads, 3)
	assert.Equal(t, int64(4), reloads[2], "d must be recomputed after b and c")
	assert.Equal(t, 0, a.reloads, "roots are never reloaded by the graph")

	reloads = reloads[:0]
	n, err = g.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "nothing changed")

	c.version++
	n, err = g.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only d depends on c")
	assert.Equal(t, []int64{4}, reloads)
	assert.Equal(t, map[int64]int{2: 1, 3: 1, 4: 2}, applied)

	reloads = reloads[:0]
	a.version++
	n, err = g.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(4), reloads[2])
}

func TestGraph_Cycle(t *testing.T) {
	var reloads []int64
	a := &fakeNode{id: 1, log: &reloads}
	b := &fakeNode{id: 2, log: &reloads}
	c := &fakeNode{id: 3, log: &reloads}
	g := NewGraph()
	require.NoError(t, g.AddDependency(b, nil, a))
	require.NoError(t, g.AddDependency(c, nil, b))

	err := g.AddDependency(a, nil, c)
	assert.ErrorIs(t, err, ErrCycle)
	err = g.AddDependency(b, nil, b)
	assert.ErrorIs(t, err, ErrCycle)

	n, err := g.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the graph is unchanged after rejected dependencies")
	assert.Equal(t, []int64{2, 3}, reloads)
}

func TestGraph_Errors(t *testing.T) {
	var reloads []int64
	a := &fakeNode{id: 1, log: &reloads}
	b := &fakeNode{id: 2, log: &reloads}
	g := NewGraph()
	errApply := errors.New("apply failed")
	failApply := true
	require.NoError(t, g.AddDependency(b, func(ctx context.Context) error {
		if failApply {
			return errApply
		}
		return nil
	}, a))

	_, err := g.Update(context.Background())
	assert.ErrorIs(t, err, errApply)
	assert.Empty(t, reloads)

	failApply = false
	errReload := errors.New("reload failed")
	b.err = errReload
	_, err = g.Update(context.Background())
	assert.ErrorIs(t, err, errReload)

	b.err = nil
	n, err := g.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed nodes are retried")

	g.Remove(a)
	a.version++
	n, err = g.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLibrary_Links(t *testing.T) {
	ctx := context.Background()
	db := thSetupDB(t)
	lib := thSetupLibrary(t, db, Options{})

	artist1, err := db.Artist().Create(ctx, repos.CreateArtistParams{Name: "A"})
	require.NoError(t, err)
	artist2, err := db.Artist().Create(ctx, repos.CreateArtistParams{Name: "B"})
	require.NoError(t, err)
	album1, err := db.Album().Create(ctx, repos.CreateAlbumParams{Title: "A1", ArtistID: &artist1})
	require.NoError(t, err)
	album2, err := db.Album().Create(ctx, repos.CreateAlbumParams{Title: "B1", ArtistID: &artist2})
	require.NoError(t, err)
	thCreateTracks(t, db, 4, func(i int, p *repos.CreateTrackParams) {
		if i < 3 {
			p.ArtistID, p.AlbumID = &artist1, &album1
		} else {
			p.ArtistID, p.AlbumID = &artist2, &album2
		}
	})

	artists := lib.NewArtistModel()
	albums := lib.NewAlbumModel()
	tracks := lib.NewTrackModel()
	require.NoError(t, lib.LinkByArtist(artists, albums, tracks))
	require.NoError(t, lib.LinkByAlbum(albums, tracks))
	assert.ErrorIs(t, lib.LinkByAlbum(albums, albums), ErrCycle)

	require.NoError(t, artists.Reload(ctx))
	n, err := lib.Graph().Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, albums.Count())
	assert.Equal(t, 4, tracks.Count())

	// select artist B
	artists.Select(1)
	_, err = lib.Graph().Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, albums.Count())
	assert.Equal(t, 1, tracks.Count())

	// select artist A, then album A1 only
	artists.ClearSelection()
	artists.Select(0)
	_, err = lib.Graph().Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, albums.Count())
	assert.Equal(t, 3, tracks.Count())
	albums.Select(0)
	_, err = lib.Graph().Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, tracks.Count())
	assert.Equal(t, []string{album1}, tracks.Predicate().Filter.AlbumIDs)
}
