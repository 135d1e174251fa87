package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "pet_1.jpg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/pet_1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "pet_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, store.Remove(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, "pet_1.jpg"))
	assert.True(t, os.IsNotExist(err))

	// segunda vez: no existe, no es error
	require.NoError(t, store.Remove(context.Background(), url))
}

func TestPhotoStore_RejectsTraversal(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), "uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../evil.jpg", []byte("x"))
	require.Error(t, err)

	_, err = store.Save(context.Background(), ".hidden", []byte("x"))
	require.Error(t, err)
}

func TestPhotoStore_RemoveIgnoresForeignURLs(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "https://cdn.example.com/a.jpg"))
	assert.NoError(t, store.Remove(context.Background(), "/uploads/../../etc/passwd"))
}
