// internal/session/service.go
//
// Application layer between transport and the game engine.
// Every operation follows the same sequence: load the game by id, apply a
// pure engine transition, store the new value. Saves are last-write-wins;
// two concurrent requests on the same game may overwrite each other.
//
// When a score completes a game, the final total is handed to the optional
// result recorder exactly once (the transition from not-over to over).

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/game"
	"github.com/robalobadob/yams/internal/results"
	"github.com/robalobadob/yams/internal/score"
	"github.com/robalobadob/yams/internal/store"
)

// Recorder receives finished games.
type Recorder interface {
	Record(ctx context.Context, r results.Result) error
}

// Service runs game operations against a store.
type Service struct {
	store    store.Store
	roller   dice.Roller
	recorder Recorder
	metrics  *Metrics
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records finished games through r.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithMetrics reports operation counts through m.
func WithMetrics(m *Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithClock overrides the time source used for finish timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New constructs a Service. roller supplies every die roll.
func New(st store.Store, roller dice.Roller, opts ...Option) *Service {
	s := &Service{store: st, roller: roller, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts and stores a new game.
func (s *Service) Create(ctx context.Context) (game.Game, error) {
	g := game.New()
	if err := s.store.Save(ctx, g); err != nil {
		return game.Game{}, err
	}
	s.metrics.gameCreated()
	log.Debug().Str("gameId", g.ID.String()).Msg("game created")
	return g, nil
}

// Get loads a game.
func (s *Service) Get(ctx context.Context, id game.ID) (game.Game, error) {
	return s.store.Get(ctx, id)
}

// Throw throws the dice of a game.
func (s *Service) Throw(ctx context.Context, id game.ID) (game.Game, error) {
	g, err := s.update(ctx, id, "throw", func(g game.Game) (game.Game, error) {
		return g.ThrowDice(s.roller)
	})
	if err != nil {
		return g, err
	}
	s.metrics.thrown(g.Round)
	return g, nil
}

// Toggle flips the selection of one die.
func (s *Service) Toggle(ctx context.Context, id game.ID, i dice.Index) (game.Game, error) {
	g, err := s.update(ctx, id, "select", func(g game.Game) (game.Game, error) {
		return g.ToggleDieSelection(i)
	})
	if err != nil {
		return g, err
	}
	s.metrics.selected()
	return g, nil
}

// Score assigns a category from the current dice and ends the turn.
func (s *Service) Score(ctx context.Context, id game.ID, c score.Category) (game.Game, error) {
	var wasOver bool
	g, err := s.update(ctx, id, "score", func(g game.Game) (game.Game, error) {
		wasOver = g.IsOver()
		return g.AddScore(c)
	})
	if err != nil {
		return g, err
	}
	s.metrics.scored(c)
	if !wasOver && g.IsOver() {
		s.finish(ctx, g)
	}
	return g, nil
}

// Reset clears a game's progress.
func (s *Service) Reset(ctx context.Context, id game.ID) (game.Game, error) {
	g, err := s.update(ctx, id, "reset", func(g game.Game) (game.Game, error) {
		return g.Reset(), nil
	})
	if err != nil {
		return g, err
	}
	s.metrics.reset()
	return g, nil
}

// Options lists what the current dice would score in each open category.
// A game without dice has no options.
func (s *Service) Options(ctx context.Context, id game.ID) ([]score.Option, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.State() == game.StateNoDice {
		return []score.Option{}, nil
	}
	return g.ScoreOptions()
}

func (s *Service) update(ctx context.Context, id game.ID, op string, fn func(game.Game) (game.Game, error)) (game.Game, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return game.Game{}, err
	}
	next, err := fn(g)
	if err != nil {
		s.metrics.rejected(op)
		return g, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return g, fmt.Errorf("%s: %w", op, err)
	}
	return next, nil
}

func (s *Service) finish(ctx context.Context, g game.Game) {
	s.metrics.completed(g.TotalScore())
	log.Info().Str("gameId", g.ID.String()).Int("total", g.TotalScore()).Msg("game finished")
	if s.recorder == nil {
		return
	}
	r := results.Result{
		GameID:     g.ID.String(),
		Total:      g.TotalScore(),
		Bonus:      g.Score.IsSet(score.Bonus),
		FinishedAt: s.now(),
	}
	if err := s.recorder.Record(ctx, r); err != nil {
		log.Warn().Err(err).Str("gameId", r.GameID).Msg("record result")
	}
}
