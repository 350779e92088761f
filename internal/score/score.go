// internal/score/score.go
//
// The Yams score card.
// Responsibilities:
//   - Evaluate what a hand is worth in each category.
//   - Assign a category at most once and award the bonus when the six
//     number rows reach the threshold.
//   - List the open categories with their would-be points.
//   - Totals and completion.
//
// Score is a value type; Add returns a new card and leaves the receiver untouched.

package score

import (
	"errors"
	"fmt"

	"github.com/robalobadob/yams/internal/dice"
)

const (
	BonusThreshold      = 62
	BonusPoints         = 35
	FullHousePoints     = 25
	SmallStraightPoints = 30
	LargeStraightPoints = 40
	YamsPoints          = 50
)

// ErrCategoryAlreadySet is returned when a category already holds points.
var ErrCategoryAlreadySet = errors.New("score already set")

// Score holds an optional point value per category. The zero value is an
// empty card.
type Score struct {
	points [categoryCount]int
	set    [categoryCount]bool
}

// Option pairs an open category with what the current hand would score there.
type Option struct {
	Category Category `json:"scoreType"`
	Points   int      `json:"score"`
}

// New returns an empty score card.
func New() Score { return Score{} }

// Get returns the points in c and whether c has been assigned.
func (s Score) Get(c Category) (int, bool) {
	if !c.valid() {
		return 0, false
	}
	return s.points[c], s.set[c]
}

// IsSet reports whether c holds a value.
func (s Score) IsSet(c Category) bool {
	_, ok := s.Get(c)
	return ok
}

// Evaluate computes the points d is worth in c. Bonus is never earned by a hand.
func Evaluate(d dice.Dice, c Category) int {
	counts := d.NumberOfEachNumber()
	switch c {
	case Ones, Twos, Threes, Fours, Fives, Sixes:
		return d.SumSameNumber(dice.Number(c - Ones + 1))
	case ThreeOfAKind:
		if anyCount(counts, func(n int) bool { return n >= 3 }) {
			return d.Sum()
		}
	case FourOfAKind:
		if anyCount(counts, func(n int) bool { return n >= 4 }) {
			return d.Sum()
		}
	case FullHouse:
		if anyCount(counts, func(n int) bool { return n == 3 }) &&
			anyCount(counts, func(n int) bool { return n == 2 }) {
			return FullHousePoints
		}
	case SmallStraight:
		if d.Has(3) && d.Has(4) &&
			((d.Has(1) && d.Has(2)) || (d.Has(2) && d.Has(5)) || (d.Has(5) && d.Has(6))) {
			return SmallStraightPoints
		}
	case LargeStraight:
		if d.Has(2) && d.Has(3) && d.Has(4) && d.Has(5) && (d.Has(1) || d.Has(6)) {
			return LargeStraightPoints
		}
	case Yams:
		if anyCount(counts, func(n int) bool { return n == dice.Count }) {
			return YamsPoints
		}
	case Chance:
		return d.Sum()
	}
	return 0
}

func anyCount(counts [dice.Faces]int, pred func(int) bool) bool {
	for _, n := range counts {
		if pred(n) {
			return true
		}
	}
	return false
}

// Add assigns c the value of d. It fails if c is not scorable or already set.
// The bonus is awarded once the six number rows sum to BonusThreshold.
func (s Score) Add(d dice.Dice, c Category) (Score, error) {
	if !c.Scorable() {
		return s, fmt.Errorf("%w: %s", ErrInvalidCategory, c)
	}
	if s.set[c] {
		return s, fmt.Errorf("%w: %s", ErrCategoryAlreadySet, c)
	}
	s.points[c] = Evaluate(d, c)
	s.set[c] = true
	if !s.set[Bonus] && s.UpperSum() >= BonusThreshold {
		s.points[Bonus] = BonusPoints
		s.set[Bonus] = true
	}
	return s, nil
}

// Options lists every open scorable category with what d would score there.
func (s Score) Options(d dice.Dice) []Option {
	out := make([]Option, 0, categoryCount-1)
	for _, c := range ScorableCategories() {
		if s.set[c] {
			continue
		}
		out = append(out, Option{Category: c, Points: Evaluate(d, c)})
	}
	return out
}

// UpperSum adds up the six number rows; unset rows count as zero.
func (s Score) UpperSum() int {
	sum := 0
	for _, c := range numberCategories {
		sum += s.points[c]
	}
	return sum
}

// Total adds up every assigned row, bonus included.
func (s Score) Total() int {
	sum := 0
	for c := range s.points {
		if s.set[c] {
			sum += s.points[c]
		}
	}
	return sum
}

// IsCompleted reports whether all thirteen scorable rows are filled.
// The bonus is not required: a card that never reaches the threshold still ends.
func (s Score) IsCompleted() bool {
	for _, c := range ScorableCategories() {
		if !s.set[c] {
			return false
		}
	}
	return true
}
