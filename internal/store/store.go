package store

import (
	"errors"
	"log/slog"
	"time"
)

var (
	// ErrNotFound is returned when an update addresses a missing record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when a create reuses an existing id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrVersionConflict is returned by compare-and-swap writes whose
	// expected version no longer matches the stored one.
	ErrVersionConflict = errors.New("version conflict")
)

type rowsCloser interface {
	Close() error
}

func closeRows(rows rowsCloser) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}

func now() time.Time {
	return time.Now().UTC()
}
