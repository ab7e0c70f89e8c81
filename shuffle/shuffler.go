package shuffle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/views"
	"github.com/juho05/log"
)

type Mode string

const (
	ModeSong   Mode = "song"
	ModeArtist Mode = "artist"
	ModeAlbum  Mode = "album"
	ModeRating Mode = "rating"
	ModeScore  Mode = "score"
)

var Modes = []Mode{ModeSong, ModeArtist, ModeAlbum, ModeRating, ModeScore}

func (m Mode) Valid() bool {
	switch m {
	case ModeSong, ModeArtist, ModeAlbum, ModeRating, ModeScore:
		return true
	}
	return false
}

var ErrUnknownMode = errors.New("unknown shuffle mode")

// Model is the track view a Shuffler picks from.
type Model interface {
	CacheID() int64
	WithLock(fn func(s views.Snapshot) error) error
}

type Option func(s *Shuffler)

// WithClock sets the function used to determine the time of a pick.
func WithClock(now func() time.Time) Option {
	return func(s *Shuffler) {
		s.now = now
	}
}

// WithRand sets the source of uniform random numbers in [0, 1) used to pick slots.
func WithRand(fn func() float64) Option {
	return func(s *Shuffler) {
		s.rand = fn
	}
}

// Shuffler picks random tracks of a model according to a shuffle mode.
// Tracks played or skipped after the current watermark are not picked. When
// every track has been played and repeat is requested, the watermark is
// rewound to the time of the last pick.
type Shuffler struct {
	mu         sync.Mutex
	model      Model
	strategies map[Mode]RandomBy
	beganAt    time.Time
	lastPick   time.Time
	now        func() time.Time
	rand       func() float64
}

func NewShuffler(model Model, repo repos.RandomRepository, opts ...Option) *Shuffler {
	s := &Shuffler{
		model: model,
		now:   time.Now,
		rand:  rand.Float64,
	}
	for _, o := range opts {
		o(s)
	}
	s.strategies = map[Mode]RandomBy{
		ModeSong:   NewRandomByTrack(repo, model),
		ModeArtist: NewRandomByArtist(repo, model),
		ModeAlbum:  NewRandomByAlbum(repo, model),
		ModeRating: NewRandomByRating(repo, model, s.rand),
		ModeScore:  NewRandomByScore(repo, model, s.rand),
	}
	return s
}

// SetModel binds all strategies to model.
func (s *Shuffler) SetModel(model Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	for _, st := range s.strategies {
		st.SetModel(model)
	}
}

// Watermarks returns the current watermark and the time of the last pick.
func (s *Shuffler) Watermarks() (beganAt, lastPick time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beganAt, s.lastPick
}

// GetRandom returns a random track of the model or nil if there is none.
// Tracks played or skipped after notPlayedSince are never returned.
// The model cannot be reloaded while GetRandom runs.
func (s *Shuffler) GetRandom(ctx context.Context, notPlayedSince time.Time, mode Mode, repeat, resetSinceTime bool) (*repos.Track, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("get random: %w: %q", ErrUnknownMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var track *repos.Track
	err := s.model.WithLock(func(snapshot views.Snapshot) error {
		if !snapshot.Loaded || snapshot.Count == 0 {
			return nil
		}

		if notPlayedSince.After(s.beganAt) {
			s.beganAt = notPlayedSince
			s.lastPick = notPlayedSince
		}

		for m, st := range s.strategies {
			if m != mode || resetSinceTime {
				st.Reset()
			}
		}

		active := s.strategies[mode]
		if !active.IsReady() {
			ok, err := active.Next(ctx, s.beganAt)
			if err != nil {
				return err
			}
			if !ok && repeat {
				log.Tracef("shuffle %s: no track left since %s, rewinding to %s", mode, s.beganAt, s.lastPick)
				s.beganAt = s.lastPick
				ok, err = active.Next(ctx, s.beganAt)
				if err != nil {
					return err
				}
			}
			if !ok {
				s.lastPick = s.now()
				return nil
			}
		}

		var err error
		track, err = active.GetTrack(ctx, s.beganAt)
		if err != nil {
			return err
		}
		s.lastPick = s.now()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get random (%s): %w", mode, err)
	}
	return track, nil
}
