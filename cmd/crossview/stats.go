package main

import (
	"context"
	"fmt"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/views"
)

func stats(ctx context.Context, args []string, lib *views.Library) error {
	var filter repos.Filter
	if len(args) > 2 {
		filter.Search = args[2]
	}

	tracks := lib.NewTrackModel()
	defer tracks.Close(ctx)
	albums := lib.NewAlbumModel()
	defer albums.Close(ctx)
	artists := lib.NewArtistModel()
	defer artists.Close(ctx)

	for _, m := range []interface {
		SetFilter(repos.Filter)
		Reload(context.Context) error
	}{tracks, albums, artists} {
		m.SetFilter(filter)
		err := m.Reload(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Println("Tracks:   ", tracks.Count())
	fmt.Println("Albums:   ", albums.Count())
	fmt.Println("Artists:  ", artists.Count())
	fmt.Println("Duration: ", formatDuration(tracks.Duration()))
	fmt.Printf("Size:      %.1f MB\n", float64(tracks.FileSize())/1e6)
	return nil
}
