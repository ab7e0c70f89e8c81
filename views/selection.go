package views

import (
	"context"
	"fmt"
	"slices"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
)

// selection holds the selected ranks of a model. Across reloads it is carried
// by item id: save before the index changes, restore afterwards.
type selection struct {
	ranks map[int]struct{}
}

func newSelection() selection {
	return selection{ranks: make(map[int]struct{})}
}

func (s *selection) selectRanks(count int, ranks ...int) bool {
	changed := false
	for _, r := range ranks {
		if r < 0 || r >= count {
			continue
		}
		if _, ok := s.ranks[r]; !ok {
			s.ranks[r] = struct{}{}
			changed = true
		}
	}
	return changed
}

func (s *selection) unselectRanks(ranks ...int) bool {
	changed := false
	for _, r := range ranks {
		if _, ok := s.ranks[r]; ok {
			delete(s.ranks, r)
			changed = true
		}
	}
	return changed
}

func (s *selection) selectAll(count int) bool {
	changed := len(s.ranks) != count
	for r := range count {
		s.ranks[r] = struct{}{}
	}
	return changed
}

func (s *selection) clear() bool {
	changed := len(s.ranks) > 0
	clear(s.ranks)
	return changed
}

func (s *selection) isSelected(rank int) bool {
	_, ok := s.ranks[rank]
	return ok
}

func (s *selection) sorted() []int {
	ranks := util.MapKeys(s.ranks)
	slices.Sort(ranks)
	return ranks
}

// save returns the item ids of all selected ranks in rank order. Resident
// items are used directly, the remaining ranks are resolved against the index rows.
func save[T repos.Item](ctx context.Context, s *selection, f *fetcher[T], repo repos.IndexRepository[T], modelID int64) ([]string, error) {
	if len(s.ranks) == 0 {
		return nil, nil
	}
	ranks := s.sorted()
	resolved := make(map[int]string, len(ranks))
	missing := make([]int, 0)
	for _, r := range ranks {
		if item, ok := f.lookup(r); ok {
			resolved[r] = item.ItemID()
			continue
		}
		missing = append(missing, r)
	}
	if len(missing) > 0 {
		ids, err := repo.ResolveIDs(ctx, modelID, missing)
		if err != nil {
			return nil, fmt.Errorf("resolve selected ids: %w", err)
		}
		for r, id := range ids {
			resolved[r] = id
		}
	}
	ids := make([]string, 0, len(ranks))
	for _, r := range ranks {
		if id, ok := resolved[r]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// restore replaces the selection with the ranks of ids in the current index.
// Ids that are no longer part of the index are dropped. On error the selection is empty.
func restore[T repos.Item](ctx context.Context, s *selection, ids []string, repo repos.IndexRepository[T], modelID int64) error {
	clear(s.ranks)
	if len(ids) == 0 {
		return nil
	}
	ranks, err := repo.ResolveRanks(ctx, modelID, ids)
	if err != nil {
		return fmt.Errorf("resolve selected ranks: %w", err)
	}
	for _, r := range ranks {
		s.ranks[r] = struct{}{}
	}
	return nil
}
