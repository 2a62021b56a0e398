package server

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed session ledger: one durable row per live
// session, recording which interface descriptor it was opened against.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if absent) a WAL-mode sqlite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping session store: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		interface_path TEXT NOT NULL,
		created_at INTEGER DEFAULT (strftime('%s', 'now')),
		last_active_at INTEGER DEFAULT (strftime('%s', 'now'))
	);
	`)
	return err
}

// Record upserts a session row, refreshing last_active_at on conflict.
func (s *Store) Record(sessionID, interfacePath string) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (session_id, interface_path) VALUES (?, ?)
		ON CONFLICT(session_id) DO UPDATE SET last_active_at = strftime('%s', 'now')
	`, sessionID, interfacePath)
	return err
}

// Touch refreshes a session's last-active timestamp.
func (s *Store) Touch(sessionID string) error {
	_, err := s.db.Exec(`UPDATE sessions SET last_active_at = strftime('%s', 'now') WHERE session_id = ?`, sessionID)
	return err
}

// Forget removes a session row; removing an absent row is not an error.
func (s *Store) Forget(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID)
	return err
}

func (s *Store) Close() error { return s.db.Close() }
