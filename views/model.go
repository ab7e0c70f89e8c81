package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/juho05/log"
)

var ErrModelClosed = errors.New("model closed")

// Event is passed to reload observers.
type Event struct {
	CacheID  int64
	Count    int
	Selected int
}

// Snapshot describes a model while its lock is held.
type Snapshot struct {
	CacheID int64
	Count   int
	Loaded  bool
}

type modelState[T repos.Item] struct {
	predicate repos.Predicate
	index     cacheIndex[T]
	fetcher   *fetcher[T]
	selection selection
	closed    bool
}

// Model is an ordered, randomly indexable view of all items matching a predicate.
// The matching ids are materialized in the backing store on Reload. Items are
// loaded lazily in windows.
type Model[T repos.Item] struct {
	id         int64
	name       string
	repo       repos.IndexRepository[T]
	state      *util.Locked[modelState[T]]
	aggregates aggregateCache
	version    atomic.Uint64

	observersMu sync.Mutex
	observers   []func(Event)
}

type modelOptions[T repos.Item] struct {
	name                  string
	repo                  repos.IndexRepository[T]
	resolve               func(ctx context.Context, items []T)
	fetchWindowMin        int
	fetchWindowMultiplier int
}

func newModel[T repos.Item](id int64, opts modelOptions[T]) *Model[T] {
	return &Model[T]{
		id:   id,
		name: opts.name,
		repo: opts.repo,
		state: util.NewLocked(modelState[T]{
			index: cacheIndex[T]{
				repo:    opts.repo,
				modelID: id,
			},
			fetcher:   newFetcher(opts.repo, id, opts.resolve, opts.fetchWindowMin, opts.fetchWindowMultiplier),
			selection: newSelection(),
		}),
	}
}

func (m *Model[T]) CacheID() int64 {
	return m.id
}

// Version changes whenever the predicate, the selection or the index of the model changes.
func (m *Model[T]) Version() uint64 {
	return m.version.Load()
}

func (m *Model[T]) bump() {
	m.version.Add(1)
}

func (m *Model[T]) Predicate() repos.Predicate {
	return util.Get(m.state, func(s *modelState[T]) repos.Predicate {
		return s.predicate.Clone()
	})
}

func (m *Model[T]) SetFilter(filter repos.Filter) {
	_ = m.state.Do(func(s *modelState[T]) error {
		if s.predicate.Filter.Equal(filter) {
			return nil
		}
		s.predicate.Filter = filter
		m.bump()
		return nil
	})
}

// SetSort replaces all sort keys with column in direction.
func (m *Model[T]) SetSort(column repos.SortColumn, direction repos.SortDirection) {
	_ = m.state.Do(func(s *modelState[T]) error {
		s.predicate.Sort = []repos.SortKey{{Column: column, Direction: direction}}
		m.bump()
		return nil
	})
}

// AddSort appends a sort key that orders items the previous keys consider equal.
func (m *Model[T]) AddSort(column repos.SortColumn, direction repos.SortDirection) {
	_ = m.state.Do(func(s *modelState[T]) error {
		s.predicate.Sort = append(s.predicate.Sort, repos.SortKey{Column: column, Direction: direction})
		m.bump()
		return nil
	})
}

func (m *Model[T]) SetVisibleRows(rows int) {
	_ = m.state.Do(func(s *modelState[T]) error {
		s.fetcher.setVisibleRows(rows)
		return nil
	})
}

// OnReload registers fn to be called after every successful reload.
func (m *Model[T]) OnReload(fn func(Event)) {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()
	m.observers = append(m.observers, fn)
}

func (m *Model[T]) notify(e Event) {
	m.observersMu.Lock()
	observers := make([]func(Event), len(m.observers))
	copy(observers, m.observers)
	m.observersMu.Unlock()
	for _, o := range observers {
		o(e)
	}
}

// Reload materializes the current predicate and carries the selection over
// to the new index. Reloads of the same model never overlap.
// If the index cannot be materialized the previous index, items and selection are kept.
// Once the new index is in place the selection is always restored by id; if the
// selected ids cannot be resolved against the new index the selection is dropped.
func (m *Model[T]) Reload(ctx context.Context) error {
	var event Event
	err := m.state.Do(func(s *modelState[T]) error {
		if s.closed {
			return ErrModelClosed
		}
		start := time.Now()

		selected, err := save(ctx, &s.selection, s.fetcher, m.repo, m.id)
		if err != nil {
			return err
		}

		count, err := s.index.reload(ctx, s.predicate)
		if err != nil {
			return err
		}
		s.fetcher.clear()
		m.bump()

		// the selected ranks refer to the old index from here on and must be
		// restored even if the aggregates cannot be computed
		aggregatesErr := m.aggregates.update(ctx, func(ctx context.Context) (repos.Aggregates, error) {
			return m.repo.ComputeAggregates(ctx, m.id)
		})
		restoreErr := restore(ctx, &s.selection, selected, m.repo, m.id)
		err = errors.Join(aggregatesErr, restoreErr)
		if err != nil {
			return err
		}

		log.Tracef("reloaded %s model %d: %d items, %d/%d selected in %s", m.name, m.id, count, len(s.selection.ranks), len(selected), time.Since(start))
		event = Event{
			CacheID:  m.id,
			Count:    count,
			Selected: len(s.selection.ranks),
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reload %s model %d: %w", m.name, m.id, err)
	}
	m.notify(event)
	return nil
}

// Count returns the number of items of the last reload.
func (m *Model[T]) Count() int {
	return util.Get(m.state, func(s *modelState[T]) int {
		return s.index.count
	})
}

// Loaded reports whether the model has been reloaded successfully at least once.
func (m *Model[T]) Loaded() bool {
	return util.Get(m.state, func(s *modelState[T]) bool {
		return s.index.loaded
	})
}

// GetValue returns the item at rank.
// It panics if the model was never reloaded or rank is not in [0, Count()).
func (m *Model[T]) GetValue(ctx context.Context, rank int) (T, error) {
	var item T
	err := m.state.Do(func(s *modelState[T]) error {
		if !s.index.loaded || s.closed {
			panic(fmt.Sprintf("GetValue on unloaded %s model %d", m.name, m.id))
		}
		if rank < 0 || rank >= s.index.count {
			panic(fmt.Sprintf("GetValue: rank %d out of range [0, %d) of %s model %d", rank, s.index.count, m.name, m.id))
		}
		var err error
		item, err = s.fetcher.get(ctx, rank, s.index.count)
		return err
	})
	if err != nil {
		return item, fmt.Errorf("get value of %s model %d: %w", m.name, m.id, err)
	}
	return item, nil
}

// Clear drops all loaded items and resets count and aggregates to zero.
// The index rows in the backing store are kept.
func (m *Model[T]) Clear() {
	_ = m.state.Do(func(s *modelState[T]) error {
		s.fetcher.clear()
		s.index.clear()
		m.aggregates.reset()
		return nil
	})
}

// Close purges the index rows of the model. The model must not be used afterwards.
func (m *Model[T]) Close(ctx context.Context) error {
	return m.state.Do(func(s *modelState[T]) error {
		if s.closed {
			return nil
		}
		err := s.index.purge(ctx)
		if err != nil {
			return fmt.Errorf("close %s model %d: %w", m.name, m.id, err)
		}
		s.fetcher.clear()
		s.selection.clear()
		m.aggregates.invalidate()
		s.closed = true
		return nil
	})
}

// WithLock calls fn while holding the model lock. No reload can run until fn returns.
// fn must not call other methods of the model.
func (m *Model[T]) WithLock(fn func(s Snapshot) error) error {
	return m.state.Do(func(s *modelState[T]) error {
		return fn(Snapshot{
			CacheID: m.id,
			Count:   s.index.count,
			Loaded:  s.index.loaded && !s.closed,
		})
	})
}

// Aggregates returns the aggregates of the last reload.
// ok is false while a reload is running or after it failed to compute them.
func (m *Model[T]) Aggregates() (aggregates repos.Aggregates, ok bool) {
	return m.aggregates.get()
}

func (m *Model[T]) Duration() repos.DurationMS {
	a, _ := m.aggregates.get()
	return a.Duration
}

func (m *Model[T]) FileSize() int64 {
	a, _ := m.aggregates.get()
	return a.FileSize
}

// selection

// Select selects ranks. Ranks outside of [0, Count()) are ignored.
func (m *Model[T]) Select(ranks ...int) {
	_ = m.state.Do(func(s *modelState[T]) error {
		if s.selection.selectRanks(s.index.count, ranks...) {
			m.bump()
		}
		return nil
	})
}

func (m *Model[T]) Unselect(ranks ...int) {
	_ = m.state.Do(func(s *modelState[T]) error {
		if s.selection.unselectRanks(ranks...) {
			m.bump()
		}
		return nil
	})
}

func (m *Model[T]) SelectAll() {
	_ = m.state.Do(func(s *modelState[T]) error {
		if s.selection.selectAll(s.index.count) {
			m.bump()
		}
		return nil
	})
}

func (m *Model[T]) ClearSelection() {
	_ = m.state.Do(func(s *modelState[T]) error {
		if s.selection.clear() {
			m.bump()
		}
		return nil
	})
}

func (m *Model[T]) IsSelected(rank int) bool {
	return util.Get(m.state, func(s *modelState[T]) bool {
		return s.selection.isSelected(rank)
	})
}

// SelectedRanks returns the selected ranks in ascending order.
func (m *Model[T]) SelectedRanks() []int {
	return util.Get(m.state, func(s *modelState[T]) []int {
		return s.selection.sorted()
	})
}

// SelectedIDs returns the item ids of the selected ranks in rank order.
func (m *Model[T]) SelectedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := m.state.Do(func(s *modelState[T]) error {
		var err error
		ids, err = save(ctx, &s.selection, s.fetcher, m.repo, m.id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("selected ids of %s model %d: %w", m.name, m.id, err)
	}
	if ids == nil {
		ids = make([]string, 0)
	}
	return ids, nil
}
