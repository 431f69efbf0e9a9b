package storage

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	t.Run("save and open round trip", func(t *testing.T) {
		data := []byte("image bytes")
		require.NoError(t, store.Save("photo.png", data))

		f, err := store.Open("photo.png")
		require.NoError(t, err)
		defer f.Close()

		read, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, data, read)
	})

	t.Run("remove deletes the file", func(t *testing.T) {
		require.NoError(t, store.Save("gone.png", []byte("x")))
		require.NoError(t, store.Remove("gone.png"))

		_, err := store.Open("gone.png")
		assert.Error(t, err)
	})

	t.Run("open of a missing file errors", func(t *testing.T) {
		_, err := store.Open("missing.png")
		assert.Error(t, err)
	})

	t.Run("traversal names are rejected", func(t *testing.T) {
		for _, name := range []string{
			"../escape.png",
			"..\\escape.png",
			"a/b.png",
			"/etc/passwd",
			"..",
		} {
			_, err := store.Open(name)
			assert.Error(t, err, "expected rejection of %q", name)

			assert.Error(t, store.Save(name, []byte("x")), "expected rejection of %q", name)
		}
	})
}
