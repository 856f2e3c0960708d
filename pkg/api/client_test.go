package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, err := New("https://api.searchcasa.com", nil)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects empty base URL", func(t *testing.T) {
		_, err := New("", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "base URL cannot be empty")
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		client, err := New("https://api.searchcasa.com/", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://api.searchcasa.com", client.baseURL)
	})
}

func TestBearerInjection(t *testing.T) {
	t.Run("attaches bearer when token present", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, TokenFunc(func() string { return "session-token" }))
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/api/admin/users", nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer session-token", gotAuth)
	})

	t.Run("no header when token absent", func(t *testing.T) {
		var gotAuth string
		var hasHeader bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, hasHeader = r.Header["Authorization"]
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, TokenFunc(func() string { return "" }))
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/api/admin/users", nil, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
		assert.False(t, hasHeader)
	})

	t.Run("no header when source is nil", func(t *testing.T) {
		var hasHeader bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasHeader = r.Header["Authorization"]
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/api/admin/users", nil, nil, nil)
		require.NoError(t, err)
		assert.False(t, hasHeader)
	})

	t.Run("token read at send time", func(t *testing.T) {
		var got []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = append(got, r.Header.Get("Authorization"))
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		token := "first"
		client, err := New(srv.URL, TokenFunc(func() string { return token }))
		require.NoError(t, err)

		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))
		token = "second"
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))

		assert.Equal(t, []string{"Bearer first", "Bearer second"}, got)
	})
}

func TestErrorNormalization(t *testing.T) {
	t.Run("server message wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"name is required"}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodPost, "/api/admin/matching-rules", map[string]string{}, nil, nil)
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "name is required", apiErr.Message)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	})

	t.Run("default message when server gives none", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, DefaultErrorMessage, apiErr.Message)
	})

	t.Run("transport error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 0, apiErr.StatusCode)
		assert.NotEqual(t, DefaultErrorMessage, apiErr.Message)
		assert.NotEmpty(t, apiErr.Message)
	})

	t.Run("not found helper", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"rule not found"}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		err = client.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		assert.True(t, IsNotFound(err))
	})
}

func TestEnvelopeUnwrap(t *testing.T) {
	t.Run("data key is authoritative when present", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"id":"r1","name":"budget"},"meta":{"page":1}}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		var rule MatchingRule
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, &rule))
		assert.Equal(t, "r1", rule.ID)
		assert.Equal(t, "budget", rule.Name)
	})

	t.Run("bare payload without data key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"r2","name":"area"}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		var rule MatchingRule
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, &rule))
		assert.Equal(t, "r2", rule.ID)
	})

	t.Run("bare array payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":"r1"},{"id":"r2"}]`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		var rules []MatchingRule
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil, &rules))
		require.Len(t, rules, 2)
		assert.Equal(t, "r2", rules[1].ID)
	})

	t.Run("malformed payload is a typed decode error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"id":["not","a","string"]}}`))
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		var rule MatchingRule
		err = client.Do(context.Background(), http.MethodGet, "/x", nil, nil, &rule)
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("empty body with out is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client, err := New(srv.URL, nil)
		require.NoError(t, err)

		var rule MatchingRule
		assert.NoError(t, client.Do(context.Background(), http.MethodDelete, "/x", nil, nil, &rule))
	})
}
