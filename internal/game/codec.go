package game

import (
	"encoding/json"
	"fmt"

	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/score"
)

// wireGame is the persisted shape:
// {id, round, dice: null|[5 dice], score: {14 rows}}.
type wireGame struct {
	ID    *ID          `json:"id"`
	Round Round        `json:"round"`
	Dice  *dice.Dice   `json:"dice"`
	Score *score.Score `json:"score"`
}

// MarshalJSON encodes g in its persisted shape.
func (g Game) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	s := g.Score
	id := g.ID
	return json.Marshal(wireGame{ID: &id, Round: g.Round, Dice: g.Dice, Score: &s})
}

// UnmarshalJSON decodes the persisted shape and enforces the round/dice invariant.
func (g *Game) UnmarshalJSON(data []byte) error {
	var w wireGame
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if w.ID == nil {
		return fmt.Errorf("%w: missing id", ErrInvalidState)
	}
	if w.Score == nil {
		return fmt.Errorf("%w: missing score", ErrInvalidState)
	}
	out := Game{ID: *w.ID, Round: w.Round, Dice: w.Dice, Score: *w.Score}
	if err := out.Validate(); err != nil {
		return err
	}
	*g = out
	return nil
}
