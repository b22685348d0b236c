package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AdminStore holds the single admin credential as a password hash.
type AdminStore struct {
	db *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

// PasswordHash returns the stored hash, or ErrNotFound if no credential
// has been set.
func (s *AdminStore) PasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT password_hash FROM admin_credential WHERE id = 1
	`).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read admin credential: %w", err)
	}
	return hash, nil
}

func (s *AdminStore) SetPasswordHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_credential (id, password_hash, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = excluded.updated_at
	`, hash, now())
	if err != nil {
		return fmt.Errorf("failed to write admin credential: %w", err)
	}
	return nil
}

// InitPasswordHash stores hash only when no credential exists yet and
// reports whether it did.
func (s *AdminStore) InitPasswordHash(ctx context.Context, hash string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_credential (id, password_hash, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, hash, now())
	if err != nil {
		return false, fmt.Errorf("failed to initialize admin credential: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}
