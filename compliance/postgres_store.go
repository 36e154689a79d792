package compliance

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresRuleStore implements RuleStore backed by PostgreSQL, scoped to a
// single document type (section8, section21, money_claim).
type PostgresRuleStore struct {
	db           *sql.DB
	documentType string
}

// NewPostgresRuleStore creates a PostgreSQL-backed RuleStore for one
// document type.
func NewPostgresRuleStore(db *sql.DB, documentType string) *PostgresRuleStore {
	return &PostgresRuleStore{
		db:           db,
		documentType: documentType,
	}
}

// Add inserts a new rule into the database.
func (s *PostgresRuleStore) Add(rule *Rule) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM compliance_rules WHERE id = $1 AND document_type = $2)
	`, rule.ID, s.documentType).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check rule existence: %w", err)
	}
	if exists {
		return fmt.Errorf("compliance rule with ID %s already exists", rule.ID)
	}

	_, err = s.db.Exec(`
		INSERT INTO compliance_rules (id, document_type, name, expression, severity, message, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rule.ID, s.documentType, rule.Name, rule.Expression, rule.Severity,
		rule.Message, rule.Active, rule.CreatedAt, rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return nil
}

// Get retrieves a rule by ID.
func (s *PostgresRuleStore) Get(id string) (*Rule, error) {
	var rule Rule
	rule.DocumentType = s.documentType
	err := s.db.QueryRow(`
		SELECT id, name, expression, severity, message, active, created_at, updated_at
		FROM compliance_rules
		WHERE id = $1 AND document_type = $2
	`, id, s.documentType).Scan(
		&rule.ID,
		&rule.Name,
		&rule.Expression,
		&rule.Severity,
		&rule.Message,
		&rule.Active,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("compliance rule %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return &rule, nil
}

// ListActive returns all active rules for the document type.
func (s *PostgresRuleStore) ListActive() ([]*Rule, error) {
	rows, err := s.db.Query(`
		SELECT id, name, expression, severity, message, active, created_at, updated_at
		FROM compliance_rules
		WHERE document_type = $1 AND active = true
		ORDER BY created_at ASC
	`, s.documentType)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	defer rows.Close()

	var rulesList []*Rule
	for rows.Next() {
		r := Rule{DocumentType: s.documentType}
		if err := rows.Scan(&r.ID, &r.Name, &r.Expression, &r.Severity,
			&r.Message, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rulesList = append(rulesList, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rulesList, nil
}

// Update modifies an existing rule.
func (s *PostgresRuleStore) Update(rule *Rule) error {
	if _, err := s.Get(rule.ID); err != nil {
		return err
	}

	rule.UpdatedAt = time.Now()

	result, err := s.db.Exec(`
		UPDATE compliance_rules
		SET name = $1, expression = $2, severity = $3, message = $4, active = $5, updated_at = $6
		WHERE id = $7 AND document_type = $8
	`, rule.Name, rule.Expression, rule.Severity, rule.Message, rule.Active,
		rule.UpdatedAt, rule.ID, s.documentType)

	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("compliance rule %s not found", rule.ID)
	}

	return nil
}

// Delete removes a rule from the database.
func (s *PostgresRuleStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM compliance_rules
		WHERE id = $1 AND document_type = $2
	`, id, s.documentType)

	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("compliance rule %s not found", id)
	}

	return nil
}
