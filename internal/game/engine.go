// internal/game/engine.go
//
// Turn state machine for a single Yams game.
// Responsibilities:
//   - Create and reset games.
//   - Throw dice: first throw of a turn rolls five fresh dice, later throws
//     re-roll the unselected ones, at most MaxRound throws per turn.
//   - Toggle die selection while dice are on the table.
//   - Score a category, which always ends the turn (round 0, no dice).
//
// Transitions:
//   NoDice(0) --throw--> WithDice(1) --throw--> WithDice(2) --throw--> WithDice(3)
//   WithDice(n) --score--> NoDice(0)
// The game is over once the score card is complete.

package game

import (
	"fmt"

	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/score"
)

// New constructs a game with a fresh id, no dice and an empty score card.
func New() Game {
	return Game{ID: NewID(), Score: score.New()}
}

// Reset discards all progress but keeps the id.
func (g Game) Reset() Game {
	return Game{ID: g.ID, Score: score.New()}
}

// IsOver reports whether every scorable category has been filled.
func (g Game) IsOver() bool { return g.Score.IsCompleted() }

// CanThrowDice reports whether ThrowDice would succeed.
func (g Game) CanThrowDice() bool { return g.Round != MaxRound && !g.IsOver() }

// TotalScore sums the score card.
func (g Game) TotalScore() int { return g.Score.Total() }

// ScoreFor returns the points in c, bonus included, and whether it is set.
func (g Game) ScoreFor(c score.Category) (int, bool) { return g.Score.Get(c) }

// ThrowDice advances the turn by one throw.
func (g Game) ThrowDice(r dice.Roller) (Game, error) {
	if g.IsOver() {
		return g, ErrGameOver
	}
	switch g.State() {
	case StateNoDice:
		d := dice.New(r)
		g.Dice = &d
		g.Round = 1
		return g, nil
	default:
		if g.Round >= MaxRound {
			return g, fmt.Errorf("%w in round %d", ErrRoundLimitExceeded, g.Round)
		}
		d := g.Dice.Throw(r)
		g.Dice = &d
		g.Round++
		return g, nil
	}
}

// ToggleDieSelection flips the selection of the die at i. It is allowed in
// every round with dice, including after the final throw.
func (g Game) ToggleDieSelection(i dice.Index) (Game, error) {
	if g.State() == StateNoDice {
		return g, ErrDiceNotThrown
	}
	d := g.Dice.ToggleDieSelection(i)
	g.Dice = &d
	return g, nil
}

// ScoreOptions lists the open categories with what the current dice would score.
func (g Game) ScoreOptions() ([]score.Option, error) {
	if g.State() == StateNoDice {
		return nil, ErrDiceNotThrown
	}
	return g.Score.Options(*g.Dice), nil
}

// AddScore assigns c from the current dice and ends the turn.
func (g Game) AddScore(c score.Category) (Game, error) {
	if g.State() == StateNoDice {
		return g, ErrDiceNotThrown
	}
	updated, err := g.Score.Add(*g.Dice, c)
	if err != nil {
		return g, err
	}
	return Game{ID: g.ID, Score: updated}, nil
}
