package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tyazhprofil/site/internal/domain"
)

// ServiceStore persists the services offered on the public site. Features
// are stored as a JSON array.
type ServiceStore struct {
	db *sql.DB
}

func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}

func scanService(row interface{ Scan(...any) error }) (*domain.ServiceItem, error) {
	item := &domain.ServiceItem{}
	var features string
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Icon, &features, &item.OrderIndex, &item.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(features), &item.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features of service %s: %w", item.ID, err)
	}
	return item, nil
}

func (s *ServiceStore) Create(ctx context.Context, item *domain.ServiceItem) (*domain.ServiceItem, error) {
	features, err := encodeFeatures(item.Features)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO services (id, title, description, icon, features, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, item.ID, item.Title, item.Description, item.Icon, features, item.OrderIndex, now())
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
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

func (s *ServiceStore) GetByID(ctx context.Context, id string) (*domain.ServiceItem, error) {
	item, err := scanService(s.db.QueryRowContext(ctx, `
		SELECT id, title, description, icon, features, order_index, created_at FROM services WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return item, nil
}

func (s *ServiceStore) List(ctx context.Context) ([]*domain.ServiceItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, icon, features, order_index, created_at FROM services
		ORDER BY order_index ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer closeRows(rows)

	items := []*domain.ServiceItem{}
	for rows.Next() {
		item, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return items, nil
}

func (s *ServiceStore) Update(ctx context.Context, item *domain.ServiceItem) error {
	features, err := encodeFeatures(item.Features)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE services SET title = ?, description = ?, icon = ?, features = ?, order_index = ? WHERE id = ?
	`, item.Title, item.Description, item.Icon, features, item.OrderIndex, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
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

func (s *ServiceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
