// internal/dice/die.go
//
// Single-die primitives for the Yams engine.
//   - Number: a face value in 1..6.
//   - Die:    a face value plus its selected (locked) flag.
//   - Roller: the randomness seam. Production wires internal/random;
//     tests script the faces they need.

package dice

// Faces is the number of sides on a die.
const Faces = 6

// Number is the face value shown by a die.
type Number int

// Valid reports whether n is a face of a six-sided die.
func (n Number) Valid() bool { return n >= 1 && n <= Faces }

// Die is a single die. A selected die is kept aside when the dice are thrown.
type Die struct {
	Number   Number `json:"number"`
	Selected bool   `json:"selected"`
}

// Roller is the randomness provider for dice rolls.
//
// Implementations must be safe for concurrent use.
type Roller interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Roll draws a uniformly distributed face value.
func Roll(r Roller) Number {
	return Number(r.Intn(Faces) + 1)
}

// NewDie returns an unselected die showing a random face.
func NewDie(r Roller) Die {
	return Die{Number: Roll(r)}
}

// ToggleSelection returns a copy of d with its selected flag flipped.
func (d Die) ToggleSelection() Die {
	d.Selected = !d.Selected
	return d
}

// SumAll adds up the face values of dice.
func SumAll(dice []Die) int {
	sum := 0
	for _, d := range dice {
		sum += int(d.Number)
	}
	return sum
}
