package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures the method and path of each request and serves a
// canned body.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.RequestURI())
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestResourceVerbPathMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("list with query params", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":[{"id":"u1"},{"id":"u2"}]}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		users, err := NewResource[User](client, "/api/admin/users").List(ctx, url.Values{"page": []string{"2"}})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, []string{"GET /api/admin/users?page=2"}, *calls)
	})

	t.Run("get", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":{"id":"u1","email":"a@b.c"}}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		user, err := NewResource[User](client, "/api/admin/users").Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", user.Email)
		assert.Equal(t, []string{"GET /api/admin/users/u1"}, *calls)
	})

	t.Run("create posts payload", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"data":{"id":"u9"}}`))
		}))
		defer srv.Close()
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		user, err := NewResource[User](client, "/api/admin/users").Create(ctx, map[string]string{"email": "new@b.c"})
		require.NoError(t, err)
		assert.Equal(t, "u9", user.ID)
		assert.Equal(t, "new@b.c", gotBody["email"])
	})

	t.Run("update puts by id", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":{"id":"u1"}}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		_, err = NewResource[User](client, "/api/admin/users").Update(ctx, "u1", map[string]string{"name": "n"})
		require.NoError(t, err)
		assert.Equal(t, []string{"PUT /api/admin/users/u1"}, *calls)
	})

	t.Run("remove deletes by id", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusNoContent, "")
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = NewResource[User](client, "/api/admin/users").Remove(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"DELETE /api/admin/users/u1"}, *calls)
	})

	t.Run("normalized error propagates", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusForbidden, `{"message":"forbidden"}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		_, err = NewResource[User](client, "/api/admin/users").Get(ctx, "u1")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "forbidden", apiErr.Message)
	})
}

func TestAdminServiceLanguageThreading(t *testing.T) {
	ctx := context.Background()

	t.Run("list rules carries language", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":[]}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		_, err = NewAdminService(client).ListRules(ctx, "it")
		require.NoError(t, err)
		assert.Equal(t, []string{"GET /api/admin/matching-rules?language=it"}, *calls)
	})

	t.Run("get rule carries language", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":{"id":"r1"}}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		_, err = NewAdminService(client).GetRule(ctx, "r1", "en")
		require.NoError(t, err)
		assert.Equal(t, []string{"GET /api/admin/matching-rules/r1?language=en"}, *calls)
	})

	t.Run("toggle endpoints use patch", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":{"id":"u1","active":false}}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		svc := NewAdminService(client)
		_, err = svc.ToggleUserStatus(ctx, "u1")
		require.NoError(t, err)
		_, err = svc.TogglePlan(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"PATCH /api/admin/users/u1/toggle-status",
			"PATCH /api/admin/subscriptions/p1/toggle",
		}, *calls)
	})

	t.Run("nested providers", func(t *testing.T) {
		srv, calls := recordingServer(t, http.StatusOK, `{"data":[]}`)
		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		_, err = NewAdminService(client).ListProviders(ctx, "p1")
		require.NoError(t, err)
		require.NoError(t, NewAdminService(client).DeleteProvider(ctx, "p1", "pr2"))
		assert.Equal(t, []string{
			"GET /api/admin/subscriptions/p1/providers",
			"DELETE /api/admin/subscriptions/p1/providers/pr2",
		}, *calls)
	})
}
