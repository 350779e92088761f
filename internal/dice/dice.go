// internal/dice/dice.go
//
// The five-dice hand.
// Responsibilities:
//   - Create a fresh hand and re-throw the unselected dice.
//   - Toggle the selection of one die by index.
//   - Aggregate queries used by the score evaluators (face counts, sums).
//   - Validate untrusted dice indexes and decoded hands.
//
// Dice is an array, so every operation works on a copy and never mutates
// the receiver.

package dice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Count is the number of dice in a hand.
const Count = 5

var (
	// ErrInvalidDiceIndex is returned when an index is not an integer in [0,4].
	ErrInvalidDiceIndex = errors.New("given diceIndex is not a valid one")

	// ErrInvalidDice is returned when a decoded hand is malformed.
	ErrInvalidDice = errors.New("invalid dice")
)

// Dice is an ordered hand of exactly five dice.
type Dice [Count]Die

// Index addresses one die of a hand. Only values accepted by IsIndex or
// produced by ParseIndex should be used.
type Index int

// IsIndex reports whether i addresses a die.
func IsIndex(i int) bool { return i >= 0 && i < Count }

// ParseIndex converts raw user input into an Index.
func ParseIndex(raw string) (Index, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !IsIndex(n) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiceIndex, raw)
	}
	return Index(n), nil
}

// New returns five freshly rolled, unselected dice.
func New(r Roller) Dice {
	var d Dice
	for i := range d {
		d[i] = NewDie(r)
	}
	return d
}

// Throw re-rolls every unselected die and keeps the selected ones.
func (d Dice) Throw(r Roller) Dice {
	for i, die := range d {
		if die.Selected {
			continue
		}
		d[i] = Die{Number: Roll(r)}
	}
	return d
}

// ToggleDieSelection flips the selected flag of the die at i.
func (d Dice) ToggleDieSelection(i Index) Dice {
	d[i] = d[i].ToggleSelection()
	return d
}

// Sum adds up all five faces.
func (d Dice) Sum() int { return SumAll(d[:]) }

// SumSameNumber adds up the dice showing n.
func (d Dice) SumSameNumber(n Number) int {
	sum := 0
	for _, die := range d {
		if die.Number == n {
			sum += int(n)
		}
	}
	return sum
}

// NumberOfEachNumber counts the dice per face; slot k-1 holds the count of k.
func (d Dice) NumberOfEachNumber() [Faces]int {
	var counts [Faces]int
	for _, die := range d {
		counts[die.Number-1]++
	}
	return counts
}

// Has reports whether at least one die shows n.
func (d Dice) Has(n Number) bool {
	for _, die := range d {
		if die.Number == n {
			return true
		}
	}
	return false
}

// Validate checks that every die shows a legal face.
func (d Dice) Validate() error {
	for i, die := range d {
		if !die.Number.Valid() {
			return fmt.Errorf("%w: die %d shows %d", ErrInvalidDice, i, die.Number)
		}
	}
	return nil
}

// UnmarshalJSON rejects arrays that do not hold exactly five valid dice;
// the default array decoding would silently pad or truncate.
func (d *Dice) UnmarshalJSON(data []byte) error {
	var raw []Die
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDice, err)
	}
	if len(raw) != Count {
		return fmt.Errorf("%w: want %d dice, got %d", ErrInvalidDice, Count, len(raw))
	}
	var out Dice
	copy(out[:], raw)
	if err := out.Validate(); err != nil {
		return err
	}
	*d = out
	return nil
}
