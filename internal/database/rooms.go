package database

import (
	"database/sql"
	"time"
)

// RoomStatus values stored in the rooms table.
const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Room is the stored metadata of a game room.
type Room struct {
	ID            string
	Name          string
	Status        string
	TargetPlayers int
	PlayerCount   int
	CreatedAt     time.Time
	WinnerID      string
}

// RoomPlayer is one seat in a room.
type RoomPlayer struct {
	RoomID      string
	PlayerID    string
	Name        string
	Color       string
	Seat        int
	IsConnected bool
}

// CreateRoom inserts a new waiting room.
func (db *DB) CreateRoom(id, name string, targetPlayers int) error {
	_, err := db.conn.Exec(`
		INSERT INTO rooms (id, name, target_players) VALUES (?, ?, ?)
	`, id, name, targetPlayers)
	return err
}

// AddRoomPlayer seats a player in a room.
func (db *DB) AddRoomPlayer(p RoomPlayer) error {
	_, err := db.conn.Exec(`
		INSERT INTO room_players (room_id, player_id, name, color, seat, is_connected)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.RoomID, p.PlayerID, p.Name, p.Color, p.Seat, p.IsConnected)
	return err
}

// RemoveRoomPlayer frees a seat.
func (db *DB) RemoveRoomPlayer(roomID, playerID string) error {
	_, err := db.conn.Exec(`
		DELETE FROM room_players WHERE room_id = ? AND player_id = ?
	`, roomID, playerID)
	return err
}

// SetPlayerConnected updates a seat's connection flag.
func (db *DB) SetPlayerConnected(roomID, playerID string, connected bool) error {
	_, err := db.conn.Exec(`
		UPDATE room_players SET is_connected = ? WHERE room_id = ? AND player_id = ?
	`, connected, roomID, playerID)
	return err
}

// GetRoomPlayers returns a room's seats in table order.
func (db *DB) GetRoomPlayers(roomID string) ([]RoomPlayer, error) {
	rows, err := db.conn.Query(`
		SELECT room_id, player_id, name, color, seat, is_connected
		FROM room_players WHERE room_id = ? ORDER BY seat ASC
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []RoomPlayer
	for rows.Next() {
		var p RoomPlayer
		if err := rows.Scan(&p.RoomID, &p.PlayerID, &p.Name, &p.Color, &p.Seat, &p.IsConnected); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// SetRoomStarted marks a room as playing.
func (db *DB) SetRoomStarted(roomID string) error {
	_, err := db.conn.Exec(`
		UPDATE rooms SET status = ?, started_at = ? WHERE id = ?
	`, StatusPlaying, time.Now(), roomID)
	return err
}

// SetRoomFinished marks a room as finished and records the winner.
func (db *DB) SetRoomFinished(roomID, winnerID string) error {
	_, err := db.conn.Exec(`
		UPDATE rooms SET status = ?, ended_at = ?, winner_id = ? WHERE id = ?
	`, StatusFinished, time.Now(), winnerID, roomID)
	return err
}

// DeleteRoom removes a room and, via cascades, its seats, state, and
// action log.
func (db *DB) DeleteRoom(roomID string) error {
	_, err := db.conn.Exec(`DELETE FROM rooms WHERE id = ?`, roomID)
	return err
}

// SaveState upserts a room's serialized game state.
func (db *DB) SaveState(roomID, stateJSON, currentPlayerID, phase string, turnNumber int) error {
	_, err := db.conn.Exec(`
		INSERT INTO room_state (room_id, state_json, current_player_id, phase, turn_number, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(room_id) DO UPDATE SET
			state_json = excluded.state_json,
			current_player_id = excluded.current_player_id,
			phase = excluded.phase,
			turn_number = excluded.turn_number,
			updated_at = excluded.updated_at
	`, roomID, stateJSON, currentPlayerID, phase, turnNumber, time.Now())
	return err
}

// LoadState returns a room's serialized game state, or "" if none is
// stored.
func (db *DB) LoadState(roomID string) (string, error) {
	var stateJSON string
	err := db.conn.QueryRow(`
		SELECT state_json FROM room_state WHERE room_id = ?
	`, roomID).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return stateJSON, nil
}

// ListOpenRooms returns waiting rooms with their seat counts, newest
// first.
func (db *DB) ListOpenRooms() ([]*Room, error) {
	rows, err := db.conn.Query(`
		SELECT r.id, r.name, r.status, r.target_players, r.created_at,
			(SELECT COUNT(*) FROM room_players rp WHERE rp.room_id = r.id)
		FROM rooms r
		WHERE r.status = ?
		ORDER BY r.created_at DESC
	`, StatusWaiting)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r := &Room{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Status, &r.TargetPlayers, &r.CreatedAt, &r.PlayerCount); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRoom returns a room's metadata.
func (db *DB) GetRoom(roomID string) (*Room, error) {
	r := &Room{}
	var winner sql.NullString
	err := db.conn.QueryRow(`
		SELECT r.id, r.name, r.status, r.target_players, r.created_at, r.winner_id,
			(SELECT COUNT(*) FROM room_players rp WHERE rp.room_id = r.id)
		FROM rooms r WHERE r.id = ?
	`, roomID).Scan(&r.ID, &r.Name, &r.Status, &r.TargetPlayers, &r.CreatedAt, &winner, &r.PlayerCount)
	if err != nil {
		return nil, err
	}
	r.WinnerID = winner.String
	return r, nil
}
