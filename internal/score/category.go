package score

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is returned when a name is not a scorable category.
var ErrInvalidCategory = errors.New("given scoreType is not a valid one")

// Category is one row of the score card.
type Category int

// Rows in score card order. Bonus is derived and never chosen by a player.
const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	Bonus
	ThreeOfAKind
	FourOfAKind
	FullHouse
	SmallStraight
	LargeStraight
	Yams
	Chance

	categoryCount
)

var categoryNames = [categoryCount]string{
	Ones:          "ones",
	Twos:          "twos",
	Threes:        "threes",
	Fours:         "fours",
	Fives:         "fives",
	Sixes:         "sixes",
	Bonus:         "bonus",
	ThreeOfAKind:  "threeOfAKind",
	FourOfAKind:   "fourOfAKind",
	FullHouse:     "fullHouse",
	SmallStraight: "smallStraight",
	LargeStraight: "largeStraight",
	Yams:          "yams",
	Chance:        "chance",
}

var numberCategories = [...]Category{Ones, Twos, Threes, Fours, Fives, Sixes}

func (c Category) valid() bool { return c >= 0 && c < categoryCount }

func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Scorable reports whether a player may assign c.
func (c Category) Scorable() bool { return c.valid() && c != Bonus }

// Categories lists all fourteen rows in score card order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// ScorableCategories lists the thirteen rows a player can choose.
func ScorableCategories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for _, c := range Categories() {
		if c.Scorable() {
			out = append(out, c)
		}
	}
	return out
}

// CategoryFromName resolves any row name, bonus included.
func CategoryFromName(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// IsScorableScoreType reports whether name is one of the thirteen scorable rows.
func IsScorableScoreType(name string) bool {
	c, ok := CategoryFromName(name)
	return ok && c.Scorable()
}

// ParseCategory validates untrusted input into a scorable Category.
func ParseCategory(name string) (Category, error) {
	c, ok := CategoryFromName(name)
	if !ok || !c.Scorable() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
	}
	return c, nil
}

// MarshalText encodes c by name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText accepts any row name, bonus included.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := CategoryFromName(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(text))
	}
	*c = parsed
	return nil
}
