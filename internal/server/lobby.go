package server

import (
	"sync"

	"hexfield/internal/game"
	"hexfield/pkg/board"
)

// LobbyRoom is a room waiting for players. Once started, play state
// lives in the game manager and the lobby entry is retired.
type LobbyRoom struct {
	ID            string
	Name          string
	TargetPlayers int
	Mode          board.GenerationMode
	Seed          int64
	Players       []LobbySeat
	Started       bool
}

// LobbySeat is one claimed seat in a waiting room.
type LobbySeat struct {
	PlayerID string
	Name     string
}

// Lobby tracks rooms that have not started yet.
type Lobby struct {
	mu    sync.Mutex
	rooms map[string]*LobbyRoom
}

// NewLobby creates an empty lobby.
func NewLobby() *Lobby {
	return &Lobby{rooms: make(map[string]*LobbyRoom)}
}

// Create registers a waiting room.
func (l *Lobby) Create(room *LobbyRoom) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.rooms[room.ID]; exists {
		return false
	}
	l.rooms[room.ID] = room
	return true
}

// Join claims a seat. It fails when the room is missing, already
// started, or full.
func (l *Lobby) Join(roomID string, seat LobbySeat) (*LobbyRoom, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.rooms[roomID]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	if room.Started {
		return nil, game.ErrInvalidAction
	}
	if len(room.Players) >= room.TargetPlayers {
		return nil, ErrRoomFull
	}
	room.Players = append(room.Players, seat)
	return room, nil
}

// Leave frees a seat in a waiting room.
func (l *Lobby) Leave(roomID, playerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.rooms[roomID]
	if !ok || room.Started {
		return
	}
	for i, seat := range room.Players {
		if seat.PlayerID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}
	if len(room.Players) == 0 {
		delete(l.rooms, roomID)
	}
}

// Start marks a room as started and returns it. The starting player
// must hold a seat and the room needs at least the game minimum.
func (l *Lobby) Start(roomID, playerID string) (*LobbyRoom, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.rooms[roomID]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	if room.Started {
		return nil, game.ErrInvalidAction
	}
	seated := false
	for _, seat := range room.Players {
		if seat.PlayerID == playerID {
			seated = true
			break
		}
	}
	if !seated {
		return nil, game.ErrPlayerNotFound
	}
	if len(room.Players) < game.MinPlayers {
		return nil, game.ErrInvalidAction
	}
	room.Started = true
	delete(l.rooms, roomID)
	return room, nil
}

// Get returns a waiting room.
func (l *Lobby) Get(roomID string) (*LobbyRoom, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	room, ok := l.rooms[roomID]
	return room, ok
}
