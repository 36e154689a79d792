package wizard

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/woodhall335/landlord-heaven/facts"
)

// PostgresSessionStore implements SessionStore backed by PostgreSQL. The
// facts record is stored whole in a jsonb column; dotted keys stay literal
// keys because the record is flat by construction.
type PostgresSessionStore struct {
	db *sql.DB
}

// NewPostgresSessionStore creates a PostgreSQL-backed SessionStore.
func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// Create inserts a new session.
func (s *PostgresSessionStore) Create(session *Session) error {
	if session.Facts == nil {
		session.Facts = facts.Record{}
	}
	encoded, err := facts.EncodeJSON(session.Facts)
	if err != nil {
		return err
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, case_type, facts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.CaseType, encoded, session.CreatedAt, session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID.
func (s *PostgresSessionStore) Get(id string) (*Session, error) {
	var session Session
	var encoded []byte
	err := s.db.QueryRow(`
		SELECT id, case_type, facts, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(
		&session.ID,
		&session.CaseType,
		&encoded,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Facts, err = facts.DecodeJSON(encoded)
	if err != nil {
		return nil, fmt.Errorf("session %s has corrupt facts: %w", id, err)
	}

	return &session, nil
}

// SaveFacts replaces a session's facts record.
func (s *PostgresSessionStore) SaveFacts(id string, record facts.Record) error {
	encoded, err := facts.EncodeJSON(record)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE sessions
		SET facts = $1, updated_at = $2
		WHERE id = $3
	`, encoded, time.Now(), id)

	if err != nil {
		return fmt.Errorf("failed to save facts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s not found", id)
	}

	return nil
}

// Delete removes a session.
func (s *PostgresSessionStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s not found", id)
	}

	return nil
}
