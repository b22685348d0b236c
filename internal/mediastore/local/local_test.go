package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyazhprofil/site/internal/mediastore"
)

func TestLocalStoreSaveAndGet(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	ctx := context.Background()
	imageData := []byte("fake png data")

	key, err := store.Save(ctx, "portfolio", "image/png", bytes.NewReader(imageData))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "portfolio/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	reader, mimeType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "image/png", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestLocalStoreURL(t *testing.T) {
	store, err := New(t.TempDir(), "https://example.com/media/")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/media/logo/a.svg", store.URL("logo/a.svg"))
}

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/media")
	require.NoError(t, err)

	ctx := context.Background()
	key, err := store.Save(ctx, "portfolio", "image/jpeg", bytes.NewReader([]byte("test data")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, mediastore.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), mediastore.ErrNotFound)
}

func TestLocalStoreNotFound(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "nonexistent.jpg")
	assert.ErrorIs(t, err, mediastore.ErrNotFound)
}

func TestLocalStorePathTraversal(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	ctx := context.Background()

	_, _, err = store.Get(ctx, "../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, mediastore.ErrNotFound)

	_, err = store.Save(ctx, "../outside", "image/png", bytes.NewReader([]byte("x")))
	assert.Error(t, err)
}
