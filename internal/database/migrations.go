package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			-- Rooms table: stores room metadata
			CREATE TABLE rooms (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'waiting',
				target_players INTEGER NOT NULL DEFAULT 4,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				started_at DATETIME,
				ended_at DATETIME,
				winner_id TEXT
			);
			CREATE INDEX idx_rooms_status ON rooms(status);

			-- Room players: seats in a room, in table order
			CREATE TABLE room_players (
				room_id TEXT NOT NULL,
				player_id TEXT NOT NULL,
				name TEXT NOT NULL,
				color TEXT NOT NULL,
				seat INTEGER NOT NULL,
				is_connected BOOLEAN DEFAULT FALSE,
				joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (room_id, player_id),
				FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_room_players_room ON room_players(room_id);

			-- Room state: the current game state as JSON, one row per room
			CREATE TABLE room_state (
				room_id TEXT PRIMARY KEY,
				state_json TEXT NOT NULL,
				current_player_id TEXT,
				phase TEXT,
				turn_number INTEGER DEFAULT 0,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
			);

			-- Room actions: log of all accepted actions for replay/debugging
			CREATE TABLE room_actions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				room_id TEXT NOT NULL,
				player_id TEXT,
				action_type TEXT NOT NULL,
				action_json TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_room_actions_room ON room_actions(room_id);
		`,
	},
}
