// internal/game/types.go
//
// Core type definitions for the Yams game engine.
// Defines:
//   - ID:    the UUID identifying a game.
//   - Round: the number of throws taken in the current turn (0..3).
//   - State: the tag telling whether dice are on the table.
//   - Game:  the aggregate root binding the above to a score card.

package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/score"
)

var (
	ErrInvalidGameID      = errors.New("given uuid is not a valid uuid")
	ErrDiceNotThrown      = errors.New("dice not thrown")
	ErrGameOver           = errors.New("game is over")
	ErrRoundLimitExceeded = errors.New("dice cannot be thrown")
	ErrInvalidState       = errors.New("invalid game state")
)

// ID identifies a game.
type ID uuid.UUID

// NewID returns a random (version 4) game id.
func NewID() ID { return ID(uuid.New()) }

// ParseID validates untrusted input: a canonical 36 character UUID of
// version 1 to 5 with the RFC 4122 variant, or the nil UUID.
func ParseID(s string) (ID, error) {
	if len(s) != 36 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidGameID, s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidGameID, s)
	}
	if u == uuid.Nil {
		return ID(u), nil
	}
	if v := u.Version(); v < 1 || v > 5 || u.Variant() != uuid.RFC4122 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidGameID, s)
	}
	return ID(u), nil
}

func (id ID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the id in canonical form.
func (id ID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText applies the ParseID rules.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Round counts the throws taken in the current turn.
type Round int

// MaxRound is the number of throws allowed per turn.
const MaxRound Round = 3

// State tags whether the current turn has dice on the table.
type State int

const (
	// StateNoDice: round 0, nothing thrown yet this turn.
	StateNoDice State = iota
	// StateWithDice: rounds 1..3, dice present.
	StateWithDice
)

// Game holds the state of a single Yams game.
//
// Dice is nil exactly when Round is 0. Games are values: every operation
// returns a new Game and leaves its receiver as it was.
type Game struct {
	ID    ID
	Round Round
	Dice  *dice.Dice
	Score score.Score
}

// State reports which variant g is in.
func (g Game) State() State {
	if g.Dice == nil {
		return StateNoDice
	}
	return StateWithDice
}

// Validate checks the round/dice invariant.
func (g Game) Validate() error {
	switch g.State() {
	case StateNoDice:
		if g.Round != 0 {
			return fmt.Errorf("%w: round %d without dice", ErrInvalidState, g.Round)
		}
	case StateWithDice:
		if g.Round < 1 || g.Round > MaxRound {
			return fmt.Errorf("%w: round %d with dice", ErrInvalidState, g.Round)
		}
		if err := g.Dice.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
	}
	return nil
}

// Clone returns a copy of g that shares no memory with it.
func (g Game) Clone() Game {
	if g.Dice != nil {
		d := *g.Dice
		g.Dice = &d
	}
	return g
}
