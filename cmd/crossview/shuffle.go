package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/shuffle"
	"github.com/juho05/crossview/views"
)

// runShuffle prints count random tracks and marks each of them as played so
// that the following picks continue the shuffle.
func runShuffle(ctx context.Context, args []string, lib *views.Library) error {
	if len(args) < 3 {
		fmt.Println("USAGE:", args[0], "shuffle <song|artist|album|rating|score> [count] [repeat]")
		os.Exit(1)
	}
	mode := shuffle.Mode(args[2])
	count := 10
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n < 1 {
			return fmt.Errorf("shuffle: invalid count '%s'", args[3])
		}
		count = n
	}
	repeat := len(args) > 4 && args[4] == "repeat"

	tracks := lib.NewTrackModel()
	defer tracks.Close(ctx)
	err := tracks.Reload(ctx)
	if err != nil {
		return err
	}

	db := lib.DB()
	s := shuffle.NewShuffler(tracks, db.Random())
	start := time.Now()
	for i := range count {
		track, err := s.GetRandom(ctx, start, mode, repeat, false)
		if err != nil {
			return err
		}
		if track == nil {
			fmt.Println("No tracks left.")
			return nil
		}
		lib.Resolver().ResolveTracks(ctx, []*repos.Track{track})
		fmt.Printf("%4d  %-40s %-25s %-25s rating %d  score %d\n", i+1, track.Title, track.ArtistName, track.AlbumTitle, track.Rating, track.Score)
		err = db.Track().MarkPlayed(ctx, track.ID, time.Now())
		if err != nil {
			return err
		}
	}
	return nil
}
