package auth

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	store, err := OpenStore("", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	store := setupTestStore(t)

	t.Run("create and get", func(t *testing.T) {
		sess, err := store.Create(42)
		require.NoError(t, err)
		assert.NotEmpty(t, sess.ID)
		assert.True(t, sess.Authenticated())

		got, err := store.Get(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(42), got.UserID)
		assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("anonymous session", func(t *testing.T) {
		sess, err := store.Create(0)
		require.NoError(t, err)
		assert.False(t, sess.Authenticated())
		assert.False(t, (*Session)(nil).Authenticated())
	})

	t.Run("save keeps flashes", func(t *testing.T) {
		sess, err := store.Create(1)
		require.NoError(t, err)
		sess.Flashes = []string{"hello"}
		require.NoError(t, store.Save(sess))

		got, err := store.Get(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"hello"}, got.Flashes)
	})

	t.Run("delete", func(t *testing.T) {
		sess, err := store.Create(7)
		require.NoError(t, err)
		require.NoError(t, store.Delete(sess.ID))

		_, err = store.Get(sess.ID)
		assert.Equal(t, ErrSessionNotFound, err)
		assert.NoError(t, store.Delete("unknown"))
	})

	t.Run("expired session is not returned", func(t *testing.T) {
		sess := &Session{ID: "stale", UserID: 3, ExpiresAt: time.Now().Add(-time.Minute)}
		assert.Equal(t, ErrSessionNotFound, store.Save(sess))

		_, err := store.Get("stale")
		assert.Equal(t, ErrSessionNotFound, err)
	})
}

func TestStoreBackupRestore(t *testing.T) {
	src := setupTestStore(t)
	sess, err := src.Create(9)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Backup(&buf))
	assert.NotZero(t, buf.Len())

	dst := setupTestStore(t)
	require.NoError(t, dst.Restore(&buf))

	got, err := dst.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.UserID)

	n, err := dst.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreClear(t *testing.T) {
	store := setupTestStore(t)
	for i := uint(1); i <= 3; i++ {
		_, err := store.Create(i)
		require.NoError(t, err)
	}

	require.NoError(t, store.Clear())

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
