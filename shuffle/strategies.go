package shuffle

import (
	"context"
	"fmt"
	"time"

	"github.com/juho05/crossview/repos"
)

// RandomBy picks random tracks of a model. After Next returned true the
// strategy is ready and GetTrack returns tracks consistent with the pick.
// Tracks with a stream error or played or skipped after the given time are never returned.
type RandomBy interface {
	Reset()
	Next(ctx context.Context, after time.Time) (bool, error)
	// GetTrack returns nil if the strategy is not ready or no track matches the pick.
	GetTrack(ctx context.Context, after time.Time) (*repos.Track, error)
	IsReady() bool
	// SetModel binds the strategy to model and resets it.
	SetModel(model Model)
}

// slotStrategy picks a slot weighted by SlotProbabilities and then a random
// track of that slot. Every pick is used for one track only.
type slotStrategy struct {
	repo  repos.RandomRepository
	model Model
	slot  repos.Slot
	rand  func() float64
	pick  *int
}

func NewRandomByRating(repo repos.RandomRepository, model Model, rand func() float64) RandomBy {
	return &slotStrategy{repo: repo, model: model, slot: repos.SlotRating, rand: rand}
}

func NewRandomByScore(repo repos.RandomRepository, model Model, rand func() float64) RandomBy {
	return &slotStrategy{repo: repo, model: model, slot: repos.SlotScore, rand: rand}
}

func (s *slotStrategy) Reset() {
	s.pick = nil
}

func (s *slotStrategy) IsReady() bool {
	return s.pick != nil
}

func (s *slotStrategy) SetModel(model Model) {
	s.model = model
	s.Reset()
}

func (s *slotStrategy) Next(ctx context.Context, after time.Time) (bool, error) {
	counts, err := s.repo.RandomSlotCounts(ctx, s.model.CacheID(), s.slot, after)
	if err != nil {
		return false, fmt.Errorf("random by %s: count slots: %w", s.slot, err)
	}
	probabilities := SlotProbabilities(counts, s.slot.Count())
	if probabilities == nil {
		s.Reset()
		return false, nil
	}
	slot := pickSlot(probabilities, s.rand())
	s.pick = &slot
	return true, nil
}

func (s *slotStrategy) GetTrack(ctx context.Context, after time.Time) (*repos.Track, error) {
	if s.pick == nil {
		return nil, nil
	}
	defer s.Reset()
	track, err := s.repo.PickRandomMatch(ctx, s.model.CacheID(), repos.RandomConstraint{
		NotPlayedSince: after,
		Slot: &repos.SlotValue{
			Slot:  s.slot,
			Value: *s.pick,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("random by %s: pick track of slot %d: %w", s.slot, *s.pick, err)
	}
	return track, nil
}

// groupStrategy picks a random album or artist. The pick is kept across
// GetTrack calls which return the first eligible track of the group in
// disc and track number order.
type groupStrategy struct {
	repo  repos.RandomRepository
	model Model
	group repos.Group
	pick  *string
}

func NewRandomByAlbum(repo repos.RandomRepository, model Model) RandomBy {
	return &groupStrategy{repo: repo, model: model, group: repos.GroupAlbum}
}

func NewRandomByArtist(repo repos.RandomRepository, model Model) RandomBy {
	return &groupStrategy{repo: repo, model: model, group: repos.GroupArtist}
}

func (g *groupStrategy) Reset() {
	g.pick = nil
}

func (g *groupStrategy) IsReady() bool {
	return g.pick != nil
}

func (g *groupStrategy) SetModel(model Model) {
	g.model = model
	g.Reset()
}

// Pick returns the picked group id.
func (g *groupStrategy) Pick() (string, bool) {
	if g.pick == nil {
		return "", false
	}
	return *g.pick, true
}

func (g *groupStrategy) Next(ctx context.Context, after time.Time) (bool, error) {
	id, ok, err := g.repo.PickRandomGroup(ctx, g.model.CacheID(), g.group, after)
	if err != nil {
		return false, fmt.Errorf("random by %s: pick group: %w", g.group, err)
	}
	if !ok {
		g.Reset()
		return false, nil
	}
	g.pick = &id
	return true, nil
}

// GetTrack resets the strategy if no track of the picked group is eligible anymore.
func (g *groupStrategy) GetTrack(ctx context.Context, after time.Time) (*repos.Track, error) {
	if g.pick == nil {
		return nil, nil
	}
	track, err := g.repo.PickRandomMatch(ctx, g.model.CacheID(), repos.RandomConstraint{
		NotPlayedSince: after,
		Group:          g.group,
		GroupID:        g.pick,
	})
	if err != nil {
		return nil, fmt.Errorf("random by %s: first track of %s: %w", g.group, *g.pick, err)
	}
	if track == nil {
		g.Reset()
	}
	return track, nil
}

// trackStrategy picks a uniformly random eligible track.
type trackStrategy struct {
	repo  repos.RandomRepository
	model Model
	pick  *repos.Track
}

func NewRandomByTrack(repo repos.RandomRepository, model Model) RandomBy {
	return &trackStrategy{repo: repo, model: model}
}

func (t *trackStrategy) Reset() {
	t.pick = nil
}

func (t *trackStrategy) IsReady() bool {
	return t.pick != nil
}

func (t *trackStrategy) SetModel(model Model) {
	t.model = model
	t.Reset()
}

func (t *trackStrategy) Next(ctx context.Context, after time.Time) (bool, error) {
	track, err := t.repo.PickRandomMatch(ctx, t.model.CacheID(), repos.RandomConstraint{
		NotPlayedSince: after,
	})
	if err != nil {
		return false, fmt.Errorf("random by track: %w", err)
	}
	t.pick = track
	return track != nil, nil
}

func (t *trackStrategy) GetTrack(ctx context.Context, after time.Time) (*repos.Track, error) {
	if t.pick == nil {
		return nil, nil
	}
	defer t.Reset()
	if t.pick.Eligible(after) {
		return t.pick, nil
	}
	track, err := t.repo.PickRandomMatch(ctx, t.model.CacheID(), repos.RandomConstraint{
		NotPlayedSince: after,
	})
	if err != nil {
		return nil, fmt.Errorf("random by track: %w", err)
	}
	return track, nil
}
