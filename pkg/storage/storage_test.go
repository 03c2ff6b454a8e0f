package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxSize int64) *ImageStore {
	t.Helper()

	store, err := NewImageStore(&config.UploadConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: maxSize,
	})
	require.NoError(t, err)
	return store
}

func TestImageStoreSave(t *testing.T) {
	store := newTestStore(t, 1024)

	name, err := store.Save(strings.NewReader("fake image bytes"), "photo.PNG", 16)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"), "name %s", name)

	data, err := os.ReadFile(filepath.Join(store.dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestImageStoreSave_RejectsOversizedDeclaration(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.Save(strings.NewReader("irrelevant"), "big.jpg", 11)
	var tooLarge *ErrFileTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.EqualValues(t, 11, tooLarge.Size)
	assert.EqualValues(t, 10, tooLarge.Max)
}

func TestImageStoreSave_RejectsUndeclaredOversizedBody(t *testing.T) {
	store := newTestStore(t, 10)

	// declared size fits, actual content does not
	_, err := store.Save(strings.NewReader("twenty bytes of data"), "liar.jpg", 5)
	var tooLarge *ErrFileTooLarge
	require.ErrorAs(t, err, &tooLarge)

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file must be cleaned up")
}

func TestImageStoreRemove(t *testing.T) {
	store := newTestStore(t, 1024)

	name, err := store.Save(strings.NewReader("bytes"), "x.gif", 5)
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(name), "removing a missing file is not an error")
}
