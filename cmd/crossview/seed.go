package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
)

func seed(ctx context.Context, args []string, db repos.DB) error {
	if len(args) < 5 {
		fmt.Println("USAGE:", args[0], "seed <artists> <albums per artist> <tracks per album>")
		os.Exit(1)
	}
	var counts [3]int
	for i := range counts {
		n, err := strconv.Atoi(args[2+i])
		if err != nil || n < 1 {
			return fmt.Errorf("seed: invalid count '%s'", args[2+i])
		}
		counts[i] = n
	}

	start := time.Now()
	var tracks int
	err := db.Transaction(ctx, func(tx repos.Tx) error {
		for a := range counts[0] {
			artistID, err := tx.Artist().Create(ctx, repos.CreateArtistParams{
				Name: fmt.Sprintf("Artist %d", a+1),
			})
			if err != nil {
				return err
			}
			for b := range counts[1] {
				albumID, err := tx.Album().Create(ctx, repos.CreateAlbumParams{
					Title:    fmt.Sprintf("Album %d-%d", a+1, b+1),
					ArtistID: &artistID,
					Year:     util.ToPtr(1970 + rand.IntN(55)),
				})
				if err != nil {
					return err
				}
				for t := range counts[2] {
					_, err = tx.Track().Create(ctx, repos.CreateTrackParams{
						Title:       fmt.Sprintf("Track %d-%d-%d", a+1, b+1, t+1),
						AlbumID:     &albumID,
						ArtistID:    &artistID,
						DiscNumber:  util.ToPtr(1),
						TrackNumber: util.ToPtr(t + 1),
						Duration:    repos.NewDurationMS(int64(60_000 + rand.IntN(300_000))),
						FileSize:    int64(1e6 + rand.IntN(9e6)),
						Rating:      rand.IntN(6),
						Score:       rand.IntN(101),
					})
					if err != nil {
						return err
					}
					tracks++
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Printf("Created %d tracks in %s.\n", tracks, time.Since(start).Round(time.Millisecond))
	return nil
}
