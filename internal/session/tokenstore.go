package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TokenStore persists the access token across process restarts. The token is
// the only client state that survives a restart; the user record is always
// re-fetched.
type TokenStore struct {
	db *sql.DB
}

// OpenTokenStore opens (or creates) the local credential database
func OpenTokenStore(path string) (*TokenStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping token store: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}

	return &TokenStore{db: db}, nil
}

// Load returns the persisted token, or empty when none is stored
func (s *TokenStore) Load() (string, error) {
	var token string
	err := s.db.QueryRow("SELECT token FROM credentials WHERE id = 1").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// Save stores the token, replacing any previous one
func (s *TokenStore) Save(token string) error {
	query := `INSERT INTO credentials (id, token, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`
	if _, err := s.db.Exec(query, token, time.Now()); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Delete removes the persisted token
func (s *TokenStore) Delete() error {
	if _, err := s.db.Exec("DELETE FROM credentials WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *TokenStore) Close() error {
	return s.db.Close()
}
