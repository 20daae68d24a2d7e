package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a BlobStore backed by a single-table SQLite database. It
// serves deployments where the data directory sits on storage that handles
// many small files poorly, or where several stores should travel as one file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the blob stored under key, or ErrNoBlob.
func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT payload FROM blobs WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBlob
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select blob %s: %w", key, err)
	}
	return data, nil
}

// Put stores the blob under key, replacing any previous value.
func (s *SQLiteStore) Put(key string, data []byte) error {
	_, err := s.db.Exec(`INSERT INTO blobs (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, key, data)
	if err != nil {
		return fmt.Errorf("storage: upsert blob %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
