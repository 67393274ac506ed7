package database

import "time"

// Action is one accepted game action in a room's replay log.
type Action struct {
	ID         int64
	RoomID     string
	PlayerID   string
	ActionType string
	ActionJSON string
	CreatedAt  time.Time
}

// AppendAction logs an accepted action.
func (db *DB) AppendAction(roomID, playerID, actionType, actionJSON string) error {
	_, err := db.conn.Exec(`
		INSERT INTO room_actions (room_id, player_id, action_type, action_json)
		VALUES (?, ?, ?, ?)
	`, roomID, playerID, actionType, actionJSON)
	return err
}

// GetActions returns a room's action log in order.
func (db *DB) GetActions(roomID string) ([]*Action, error) {
	rows, err := db.conn.Query(`
		SELECT id, room_id, player_id, action_type, action_json, created_at
		FROM room_actions
		WHERE room_id = ?
		ORDER BY id ASC
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*Action
	for rows.Next() {
		a := &Action{}
		if err := rows.Scan(&a.ID, &a.RoomID, &a.PlayerID, &a.ActionType, &a.ActionJSON, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
