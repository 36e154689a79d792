package compliance

import (
	"database/sql"
	"fmt"
	"sync"
)

// Manager holds one compliance engine per document type, each backed by a
// Postgres rule store scoped to that type. Engines are swapped atomically on
// reload, so rule-pack updates never leave a request evaluating against a
// half-compiled set.
type Manager struct {
	engines map[string]*Engine
	db      *sql.DB
	mu      sync.RWMutex
}

// NewManager creates a manager over the given database.
func NewManager(db *sql.DB) *Manager {
	return &Manager{
		engines: make(map[string]*Engine),
		db:      db,
	}
}

// LoadAll initializes an engine for every document type that has rules in
// the database.
func (m *Manager) LoadAll() error {
	rows, err := m.db.Query(`
		SELECT DISTINCT document_type FROM compliance_rules ORDER BY document_type
	`)
	if err != nil {
		return fmt.Errorf("failed to fetch document types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var documentType string
		if err := rows.Scan(&documentType); err != nil {
			return fmt.Errorf("failed to scan document type: %w", err)
		}

		if err := m.load(documentType); err != nil {
			return fmt.Errorf("failed to initialize checks for %s: %w", documentType, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating document types: %w", err)
	}

	return nil
}

func (m *Manager) load(documentType string) error {
	store := NewPostgresRuleStore(m.db, documentType)

	engine, err := NewEngine(store)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.engines[documentType] = engine
	m.mu.Unlock()

	return nil
}

// Engine returns the engine for a document type, creating an empty one on
// first use so rule CRUD works before any rules exist for that type.
func (m *Manager) Engine(documentType string) (*Engine, error) {
	m.mu.RLock()
	engine, exists := m.engines[documentType]
	m.mu.RUnlock()

	if exists {
		return engine, nil
	}

	if err := m.load(documentType); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engines[documentType], nil
}

// Reload rebuilds the engine for a document type from the database and
// swaps it in atomically.
func (m *Manager) Reload(documentType string) error {
	store := NewPostgresRuleStore(m.db, documentType)

	engine, err := NewEngine(store)
	if err != nil {
		return fmt.Errorf("failed to rebuild checks for %s: %w", documentType, err)
	}

	m.mu.Lock()
	m.engines[documentType] = engine
	m.mu.Unlock()

	return nil
}

// DocumentTypes returns all document types with a loaded engine.
func (m *Manager) DocumentTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]string, 0, len(m.engines))
	for documentType := range m.engines {
		types = append(types, documentType)
	}
	return types
}
