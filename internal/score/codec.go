package score

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScore is returned when a decoded score card is malformed.
var ErrInvalidScore = errors.New("invalid score")

// MarshalJSON encodes the card as an object with all fourteen rows;
// unassigned rows are null.
func (s Score) MarshalJSON() ([]byte, error) {
	out := make(map[string]*int, categoryCount)
	for _, c := range Categories() {
		if p, ok := s.Get(c); ok {
			out[c.String()] = &p
		} else {
			out[c.String()] = nil
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires exactly the fourteen row keys with non-negative
// integer or null values.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw map[string]*int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: null", ErrInvalidScore)
	}
	var out Score
	for name, v := range raw {
		c, ok := CategoryFromName(name)
		if !ok {
			return fmt.Errorf("%w: unknown row %q", ErrInvalidScore, name)
		}
		if v == nil {
			continue
		}
		if *v < 0 {
			return fmt.Errorf("%w: negative %s", ErrInvalidScore, name)
		}
		out.points[c] = *v
		out.set[c] = true
	}
	for _, c := range Categories() {
		if _, ok := raw[c.String()]; !ok {
			return fmt.Errorf("%w: missing row %q", ErrInvalidScore, c)
		}
	}
	*s = out
	return nil
}
