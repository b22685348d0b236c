package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// singletonStore keeps one JSON document per name in the singletons table.
// The name is the primary key, so a second row for the same name cannot exist.
type singletonStore struct {
	db   *sql.DB
	name string
}

// get decodes the stored document into v. It returns version 0 and leaves v
// untouched when nothing has been stored yet.
func (s *singletonStore) get(ctx context.Context, v any) (int64, error) {
	var data string
	var version int64
	err := s.db.QueryRowContext(ctx, `
		SELECT data, version FROM singletons WHERE name = ?
	`, s.name).Scan(&data, &version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", s.name, err)
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", s.name, err)
	}
	return version, nil
}

// put replaces the whole document in one statement and returns the new version.
func (s *singletonStore) put(ctx context.Context, v any) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", s.name, err)
	}

	var version int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO singletons (name, data, version, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			version = singletons.version + 1,
			updated_at = excluded.updated_at
		RETURNING version
	`, s.name, string(data), now()).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", s.name, err)
	}
	return version, nil
}

// compareAndSwap replaces the document only if the stored version equals
// expected. An expected version of 0 means "nothing stored yet".
func (s *singletonStore) compareAndSwap(ctx context.Context, v any, expected int64) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", s.name, err)
	}

	var row *sql.Row
	if expected == 0 {
		row = s.db.QueryRowContext(ctx, `
			INSERT INTO singletons (name, data, version, updated_at) VALUES (?, ?, 1, ?)
			ON CONFLICT(name) DO NOTHING
			RETURNING version
		`, s.name, string(data), now())
	} else {
		row = s.db.QueryRowContext(ctx, `
			UPDATE singletons SET data = ?, version = version + 1, updated_at = ?
			WHERE name = ? AND version = ?
			RETURNING version
		`, string(data), now(), s.name, expected)
	}

	var version int64
	err = row.Scan(&version)
	if err == sql.ErrNoRows {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", s.name, err)
	}
	return version, nil
}
