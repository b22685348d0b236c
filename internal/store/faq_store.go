package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tyazhprofil/site/internal/domain"
)

type FAQStore struct {
	db *sql.DB
}

func NewFAQStore(db *sql.DB) *FAQStore {
	return &FAQStore{db: db}
}

func (s *FAQStore) Create(ctx context.Context, item *domain.FAQItem) (*domain.FAQItem, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO faq (id, question, answer, order_index, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, item.ID, item.Question, item.Answer, item.OrderIndex, now())
	if err != nil {
		return nil, fmt.Errorf("failed to create faq item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrDuplicateID
	}

	return s.GetByID(ctx, item.ID)
}

func (s *FAQStore) GetByID(ctx context.Context, id string) (*domain.FAQItem, error) {
	item := &domain.FAQItem{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, answer, order_index, created_at FROM faq WHERE id = ?
	`, id).Scan(&item.ID, &item.Question, &item.Answer, &item.OrderIndex, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faq item: %w", err)
	}

	return item, nil
}

// List returns all questions by order_index, then insertion order.
func (s *FAQStore) List(ctx context.Context) ([]*domain.FAQItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, order_index, created_at FROM faq ORDER BY order_index ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faq: %w", err)
	}
	defer closeRows(rows)

	items := []*domain.FAQItem{}
	for rows.Next() {
		item := &domain.FAQItem{}
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &item.OrderIndex, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faq: %w", err)
	}

	return items, nil
}

func (s *FAQStore) Update(ctx context.Context, item *domain.FAQItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE faq SET question = ?, answer = ?, order_index = ? WHERE id = ?
	`, item.Question, item.Answer, item.OrderIndex, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update faq item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *FAQStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM faq WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete faq item: %w", err)
	}
	return nil
}
