// Package dicetest provides scripted rollers for deterministic dice tests.
package dicetest

import "sync"

// Roller replays a fixed sequence of faces, wrapping around when exhausted.
type Roller struct {
	mu    sync.Mutex
	faces []int
	next  int
	calls int
}

// Faces returns a Roller that yields the given face values (1..6) in order.
func Faces(faces ...int) *Roller {
	if len(faces) == 0 {
		faces = []int{1}
	}
	return &Roller{faces: faces}
}

// Intn implements dice.Roller.
func (r *Roller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	face := r.faces[r.next%len(r.faces)]
	r.next++
	r.calls++
	return (face - 1) % n
}

// Calls reports how many values have been drawn.
func (r *Roller) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
