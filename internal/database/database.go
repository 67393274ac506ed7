// Package database provides SQLite persistence for rooms, game state
// snapshots, and the action log.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// dsnOptions enables foreign keys, WAL, and a busy timeout on every
// connection.
const dsnOptions = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath, creating the file and its directory
// if needed, and brings the schema up to date.
func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection avoids SQLITE_BUSY under concurrent rooms.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.applyMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// applyMigrations runs every migration with an id above the highest one
// recorded, each inside its own transaction.
func (db *DB) applyMigrations() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	var latest int
	if err := db.conn.QueryRow("SELECT COALESCE(MAX(id), 0) FROM migrations").Scan(&latest); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.id <= latest {
			continue
		}
		if err := db.apply(m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.id, m.name, err)
		}
	}
	return nil
}

func (db *DB) apply(m migration) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (id, name) VALUES (?, ?)", m.id, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
