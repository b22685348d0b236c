package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tyazhprofil/site/internal/domain"
)

type PortfolioStore struct {
	db *sql.DB
}

func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

const portfolioColumns = `id, title, description, image, category, client, duration, workers, created_at`

func scanPortfolio(row interface{ Scan(...any) error }) (*domain.PortfolioItem, error) {
	item := &domain.PortfolioItem{}
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Category,
		&item.Client, &item.Duration, &item.Workers, &item.CreatedAt)
	return item, err
}

// Create inserts item and returns the stored row. CreatedAt is assigned here.
func (s *PortfolioStore) Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolio (`+portfolioColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, item.ID, item.Title, item.Description, item.Image, item.Category,
		item.Client, item.Duration, item.Workers, now())
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio item: %w", err)
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

func (s *PortfolioStore) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	item, err := scanPortfolio(s.db.QueryRowContext(ctx, `
		SELECT `+portfolioColumns+` FROM portfolio WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	return item, nil
}

// List returns all items, newest first.
func (s *PortfolioStore) List(ctx context.Context) ([]*domain.PortfolioItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+portfolioColumns+` FROM portfolio ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}
	defer closeRows(rows)

	items := []*domain.PortfolioItem{}
	for rows.Next() {
		item, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio: %w", err)
	}

	return items, nil
}

// Update overwrites every mutable field of the item with the same id.
func (s *PortfolioStore) Update(ctx context.Context, item *domain.PortfolioItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE portfolio
		SET title = ?, description = ?, image = ?, category = ?, client = ?, duration = ?, workers = ?
		WHERE id = ?
	`, item.Title, item.Description, item.Image, item.Category, item.Client, item.Duration, item.Workers, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio item: %w", err)
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

// Delete removes the item. Deleting an unknown id is not an error.
func (s *PortfolioStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return nil
}
