package backend_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-quickdata/pkg/backend"
)

func openBackends(t *testing.T) map[string]backend.Backend {
	t.Helper()

	dir := t.TempDir()
	synced, err := backend.OpenFile(filepath.Join(dir, "synced.qdt"), backend.SyncAlways)
	require.NoError(t, err)
	unsynced, err := backend.OpenFile(filepath.Join(dir, "unsynced.qdt"), backend.SyncNever)
	require.NoError(t, err)

	return map[string]backend.Backend{
		"file-sync-always": synced,
		"file-sync-never":  unsynced,
		"memory":           backend.NewMemory(nil),
	}
}

func TestBackendContract(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer b.Close()

			size, err := b.Size()
			require.NoError(t, err)
			assert.Zero(t, size)

			n, err := b.WriteAt([]byte("hello"), 0)
			require.NoError(t, err)
			assert.Equal(t, 5, n)

			// writing past the end zero-fills the gap
			_, err = b.WriteAt([]byte("!"), 7)
			require.NoError(t, err)
			size, err = b.Size()
			require.NoError(t, err)
			assert.Equal(t, int64(8), size)

			buf := make([]byte, 8)
			_, err = b.ReadAt(buf, 0)
			require.NoError(t, err)
			assert.Equal(t, []byte("hello\x00\x00!"), buf)

			_, err = b.WriteAt([]byte("J"), 0)
			require.NoError(t, err)
			_, err = b.ReadAt(buf[:5], 0)
			require.NoError(t, err)
			assert.Equal(t, "Jello", string(buf[:5]))

			n, err = b.ReadAt(buf, 4)
			assert.Equal(t, 4, n)
			assert.ErrorIs(t, err, io.EOF)

			require.NoError(t, b.Truncate(2))
			size, err = b.Size()
			require.NoError(t, err)
			assert.Equal(t, int64(2), size)

			_, err = b.ReadAt(buf[:1], 2)
			assert.ErrorIs(t, err, io.EOF)

			require.NoError(t, b.Truncate(0))
			size, err = b.Size()
			require.NoError(t, err)
			assert.Zero(t, size)
		})
	}
}

func TestFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.qdt")

	b, err := backend.OpenFile(path, backend.SyncAlways)
	require.NoError(t, err)
	assert.Equal(t, path, b.Name())
	_, err = b.WriteAt([]byte("persisted"), 0)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(data))

	b, err = backend.OpenFile(path, backend.SyncAlways)
	require.NoError(t, err)
	defer b.Close()
	size, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(len("persisted")), size)
}

func TestOpenFileMissingDirectory(t *testing.T) {
	_, err := backend.OpenFile(filepath.Join(t.TempDir(), "missing", "store.qdt"), backend.SyncAlways)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemory(t *testing.T) {
	t.Run("copies its initial contents", func(t *testing.T) {
		initial := []byte("abc")
		m := backend.NewMemory(initial)
		initial[0] = 'X'
		assert.Equal(t, []byte("abc"), m.Bytes())
	})

	t.Run("regrowth after truncate is zeroed", func(t *testing.T) {
		m := backend.NewMemory([]byte("abcdef"))
		require.NoError(t, m.Truncate(2))
		_, err := m.WriteAt([]byte("Z"), 4)
		require.NoError(t, err)
		assert.Equal(t, []byte("ab\x00\x00Z"), m.Bytes())
	})

	t.Run("fails after close", func(t *testing.T) {
		m := backend.NewMemory(nil)
		require.NoError(t, m.Close())

		_, err := m.WriteAt([]byte("x"), 0)
		assert.ErrorIs(t, err, os.ErrClosed)
		_, err = m.ReadAt(make([]byte, 1), 0)
		assert.ErrorIs(t, err, os.ErrClosed)
		_, err = m.Size()
		assert.ErrorIs(t, err, os.ErrClosed)
		assert.ErrorIs(t, m.Truncate(0), os.ErrClosed)
		assert.ErrorIs(t, m.Close(), os.ErrClosed)
	})
}
