package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcasa/scadmin/pkg/api"
)

func testSession() Session {
	return Session{
		Token:       "session-token-789",
		UserType:    UserTypeAdmin,
		Permissions: []string{"rules.create", "rules.delete"},
		LoggedIn:    true,
	}
}

func TestFileStore(t *testing.T) {
	newStore := func(t *testing.T) *FileStore {
		store, err := NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
		require.NoError(t, err)
		return store
	}

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewFileStore("")
		assert.Error(t, err)
	})

	t.Run("load on empty store is unauthenticated", func(t *testing.T) {
		store := newStore(t)
		s, err := store.Load()
		require.NoError(t, err)
		assert.False(t, s.Authenticated())
	})

	t.Run("save and load round-trip", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(testSession()))

		s, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, testSession(), s)
		assert.True(t, s.Authenticated())
	})

	t.Run("clear removes the session", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(testSession()))
		require.NoError(t, store.Clear())

		s, err := store.Load()
		require.NoError(t, err)
		assert.False(t, s.Authenticated())
	})

	t.Run("clear on empty store is a no-op", func(t *testing.T) {
		store := newStore(t)
		assert.NoError(t, store.Clear())
	})
}

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "default")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	t.Run("rejects empty profile", func(t *testing.T) {
		_, err := NewRedisStore(&redis.Options{Addr: "localhost:6379"}, "")
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		store, _ := setupRedisStore(t)
		assert.NoError(t, store.Ping(context.Background()))
	})

	t.Run("load on empty store is unauthenticated", func(t *testing.T) {
		store, _ := setupRedisStore(t)
		s, err := store.Load()
		require.NoError(t, err)
		assert.False(t, s.Authenticated())
	})

	t.Run("save and load round-trip", func(t *testing.T) {
		store, _ := setupRedisStore(t)
		require.NoError(t, store.Save(testSession()))

		s, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, testSession(), s)
	})

	t.Run("keys are profile-namespaced", func(t *testing.T) {
		store, mr := setupRedisStore(t)
		require.NoError(t, store.Save(testSession()))
		assert.True(t, mr.Exists("scadmin:session:default"))
	})

	t.Run("save replaces previous session", func(t *testing.T) {
		store, _ := setupRedisStore(t)
		require.NoError(t, store.Save(testSession()))

		replacement := Session{Token: "t2", UserType: UserTypeStaff, LoggedIn: true}
		require.NoError(t, store.Save(replacement))

		s, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "t2", s.Token)
		assert.Equal(t, UserTypeStaff, s.UserType)
		assert.Empty(t, s.Permissions)
	})

	t.Run("clear removes the session", func(t *testing.T) {
		store, mr := setupRedisStore(t)
		require.NoError(t, store.Save(testSession()))
		require.NoError(t, store.Clear())
		assert.False(t, mr.Exists("scadmin:session:default"))
	})
}

func TestTokenSource(t *testing.T) {
	t.Run("returns stored token", func(t *testing.T) {
		store, err := NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
		require.NoError(t, err)
		require.NoError(t, store.Save(testSession()))

		assert.Equal(t, "session-token-789", NewTokenSource(store).Token())
	})

	t.Run("empty token when not logged in", func(t *testing.T) {
		store, err := NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
		require.NoError(t, err)

		assert.Empty(t, NewTokenSource(store).Token())
	})
}

func TestLogoutClearsLocallyOnServerFailure(t *testing.T) {
	// The server rejects the logout call; the local session must still be
	// cleared.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"session backend unavailable"}`))
	}))
	defer srv.Close()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, err)
	require.NoError(t, store.Save(testSession()))

	client, err := api.New(srv.URL, NewTokenSource(store))
	require.NoError(t, err)

	require.NoError(t, Logout(context.Background(), api.NewAuthService(client), store))

	s, err := store.Load()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token)
}
