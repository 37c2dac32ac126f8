//go:build sqlite

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"spikenet/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, event model.MembershipEvent) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO membership_events (network_uid, entity_uid, op, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.NetworkUID, event.EntityUID, string(event.Op), event.SchemaVersion, event.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) Events(ctx context.Context, networkUID string) ([]model.MembershipEvent, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT payload FROM membership_events
		WHERE network_uid = ?
		ORDER BY id
	`, networkUID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var events []model.MembershipEvent
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		event, err := DecodeEvent(payload)
		if err != nil {
			return nil, false, fmt.Errorf("decode membership event for %s: %w", networkUID, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(events) == 0 {
		return nil, false, nil
	}
	return events, true, nil
}

func (s *SQLiteStore) Reset(ctx context.Context, networkUID string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM membership_events WHERE network_uid = ?`, networkUID)
	return err
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS membership_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			network_uid TEXT NOT NULL,
			entity_uid TEXT NOT NULL,
			op TEXT NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS membership_events_network ON membership_events (network_uid, id);
	`)
	return err
}
