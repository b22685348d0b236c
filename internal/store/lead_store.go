package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tyazhprofil/site/internal/domain"
)

type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

func (s *LeadStore) Create(ctx context.Context, name, phone, message string) (*domain.Lead, error) {
	createdAt := now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (name, phone, message, created_at) VALUES (?, ?, ?, ?)
	`, name, phone, message, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &domain.Lead{ID: id, Name: name, Phone: phone, Message: message, CreatedAt: createdAt}, nil
}

// List returns at most limit leads, newest first.
func (s *LeadStore) List(ctx context.Context, limit int) ([]*domain.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, message, created_at FROM leads ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer closeRows(rows)

	leads := []*domain.Lead{}
	for rows.Next() {
		lead := &domain.Lead{}
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Message, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}

	return leads, nil
}
