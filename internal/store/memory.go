// internal/store/memory.go
//
// Game persistence contract plus its in-memory implementation.
// The in-memory store is used for ephemeral sessions in development and
// tests, or when durability is not required.
//
// Characteristics:
//   - Stores game.Game values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Values are cloned on the way in and out, so callers never alias stored state.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/yams/internal/game"
)

// ErrNotFound is returned by Get when no game has the requested id.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for games.
// Saves are last-write-wins; no version check is performed.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g game.Game) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game does not exist.
	Get(ctx context.Context, id game.ID) (game.Game, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[game.ID]game.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[game.ID]game.Game)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g game.Game) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id game.ID) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return game.Game{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
