package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte(`{"bns_sections": {}}`)
	require.NoError(t, store.Upload(ctx, "indian_law_dataset.json", bytes.NewReader(content)))

	rc, err := store.Download(ctx, "indian_law_dataset.json")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, "indian_law_dataset.json"))
	_, err = store.Download(ctx, "indian_law_dataset.json")
	assert.Error(t, err)
}

func TestLocalStorageMissingFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "nope.json")
	assert.ErrorContains(t, err, "dataset not found")
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"../outside.json", "/etc/passwd", "."} {
		_, err := store.Download(ctx, name)
		assert.Error(t, err, "name %q", name)

		err = store.Upload(ctx, name, bytes.NewReader([]byte("x")))
		assert.Error(t, err, "name %q", name)
	}
}

func TestDeleteMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "absent.json"))
}
