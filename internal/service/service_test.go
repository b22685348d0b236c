package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyazhprofil/site/internal/db"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return d
}

// recordingReleaser remembers every Release call.
type recordingReleaser struct {
	kinds []string
	urls  []string
}

func (r *recordingReleaser) Release(_ context.Context, kind, url string) error {
	r.kinds = append(r.kinds, kind)
	r.urls = append(r.urls, url)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
