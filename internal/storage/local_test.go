package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabytin_backend/internal/storage"
)

func setupStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()

	base := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocalStorage(storage.Config{BasePath: base, BaseURL: "/photos/files"})
	require.NoError(t, err)
	return store, base
}

func TestSaveAndGet(t *testing.T) {
	store, _ := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1/photo.jpg", strings.NewReader("content"), "image/jpeg"))

	reader, err := store.Get(ctx, "u1/photo.jpg")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestGetRejectsEscapingPath(t *testing.T) {
	store, base := setupStorage(t)
	ctx := context.Background()

	// файл рядом с хранилищем, достать его через Get нельзя
	secretPath := filepath.Join(filepath.Dir(base), "config.yaml")
	require.NoError(t, os.WriteFile(secretPath, []byte("jwt_secret: supersecret"), 0644))

	for _, path := range []string{
		"../config.yaml",
		"/../config.yaml",
		"u1/../../config.yaml",
		"..",
	} {
		_, err := store.Get(ctx, path)
		assert.ErrorIs(t, err, storage.ErrPathOutsideStorage, "path %q", path)
	}
}

func TestSaveRejectsEscapingPath(t *testing.T) {
	store, base := setupStorage(t)
	ctx := context.Background()

	err := store.Save(ctx, "../evil.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, storage.ErrPathOutsideStorage)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(base), "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteRejectsEscapingPath(t *testing.T) {
	store, base := setupStorage(t)
	ctx := context.Background()

	secretPath := filepath.Join(filepath.Dir(base), "keep.txt")
	require.NoError(t, os.WriteFile(secretPath, []byte("keep"), 0644))

	assert.ErrorIs(t, store.Delete(ctx, "../keep.txt"), storage.ErrPathOutsideStorage)

	_, statErr := os.Stat(secretPath)
	assert.NoError(t, statErr)
}

func TestExistsInsidePathsOnly(t *testing.T) {
	store, _ := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1/photo.jpg", strings.NewReader("content"), "image/jpeg"))

	ok, err := store.Exists(ctx, "u1/photo.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	// после чистки путь возвращается внутрь хранилища, это не выход наружу
	ok, err = store.Exists(ctx, "../uploads/u1/photo.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Exists(ctx, "../secrets/token")
	assert.ErrorIs(t, err, storage.ErrPathOutsideStorage)
}
