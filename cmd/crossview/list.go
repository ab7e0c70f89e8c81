package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/views"
)

// maxListRows is the number of rows list prints.
const maxListRows = 50

// parseSort parses "column" or "column:desc".
func parseSort(s string) (repos.SortColumn, repos.SortDirection) {
	column, direction, _ := strings.Cut(s, ":")
	if !repos.SortDirection(direction).Valid() {
		direction = string(repos.SortAsc)
	}
	return repos.SortColumn(column), repos.SortDirection(direction)
}

// printModel prints the first rows of m after setting its filter and sort from args.
func printModel[T repos.Item](ctx context.Context, m *views.Model[T], args []string, format func(T) string) error {
	defer m.Close(ctx)
	if len(args) > 0 {
		m.SetFilter(repos.Filter{Search: args[0]})
	}
	if len(args) > 1 {
		m.SetSort(parseSort(args[1]))
	}
	m.SetVisibleRows(maxListRows)
	err := m.Reload(ctx)
	if err != nil {
		return err
	}
	for i := range min(m.Count(), maxListRows) {
		item, err := m.GetValue(ctx, i)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s\n", i+1, format(item))
	}
	if m.Count() > maxListRows {
		fmt.Printf("... %d more\n", m.Count()-maxListRows)
	}
	return nil
}

func list(ctx context.Context, args []string, lib *views.Library) error {
	if len(args) < 3 {
		fmt.Println("USAGE:", args[0], "list <tracks|albums|artists> [search] [sort[:desc]]")
		os.Exit(1)
	}
	switch args[2] {
	case "tracks":
		return printModel(ctx, lib.NewTrackModel(), args[3:], func(t *repos.Track) string {
			return fmt.Sprintf("%-40s %-25s %-25s %s  rating %d  score %d", t.Title, t.ArtistName, t.AlbumTitle, formatDuration(t.Duration), t.Rating, t.Score)
		})
	case "albums":
		return printModel(ctx, lib.NewAlbumModel(), args[3:], func(a *repos.Album) string {
			year := ""
			if a.Year != nil {
				year = fmt.Sprintf("(%d)", *a.Year)
			}
			return fmt.Sprintf("%-40s %-25s %s", a.Title, a.ArtistName, year)
		})
	case "artists":
		return printModel(ctx, lib.NewArtistModel(), args[3:], func(a *repos.Artist) string {
			return a.Name
		})
	default:
		fmt.Println("Unknown list")
		fmt.Println("USAGE:", args[0], "list <tracks|albums|artists> [search] [sort[:desc]]")
		os.Exit(1)
	}
	return nil
}

func formatDuration(d repos.DurationMS) string {
	s := d.Seconds()
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}
