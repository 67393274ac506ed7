package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"hexfield/pkg/board"
)

// MinPlayers and MaxPlayers bound the table size.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Room pairs a game state with the lock that serializes access to it.
type Room struct {
	mu    sync.Mutex
	state *GameState
}

// Do runs fn with exclusive access to the room's game state.
func (r *Room) Do(fn func(g *GameState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.state)
}

// Manager owns all active game rooms. It handles room lifecycle;
// per-room rule calls go through Room.Do.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

// CreateGame generates a board and starts a new game in the initial
// placement phase. Seating order follows the given slice; colors are
// assigned in seating order.
func (m *Manager) CreateGame(roomID string, players []*Player, opts board.GeneratorOptions) (*GameState, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d to %d players, got %d", ErrInvalidAction, MinPlayers, MaxPlayers, len(players))
	}

	colors := AllColors()
	for i, p := range players {
		if p.Color == "" {
			p.Color = colors[i]
		}
	}

	b, err := board.NewGenerator(opts).Generate()
	if err != nil {
		return nil, fmt.Errorf("generate board: %w", err)
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	g := NewGame(roomID, b, players, rng)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rooms[roomID]; exists {
		return nil, ErrRoomExists
	}
	m.rooms[roomID] = &Room{state: g}
	return g, nil
}

// Room returns the room with the given ID.
func (m *Manager) Room(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Do runs fn with exclusive access to the named room's game state.
func (m *Manager) Do(roomID string, fn func(g *GameState) error) error {
	r, err := m.Room(roomID)
	if err != nil {
		return err
	}
	return r.Do(fn)
}

// Remove drops a room from the manager.
func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
}

// Rooms returns the IDs of all active rooms, sorted.
func (m *Manager) Rooms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
