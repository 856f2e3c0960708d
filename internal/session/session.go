// Package session owns the persisted client session: the bearer token, the
// user type selected at login, and the permissions granted to the session.
// The session survives process restarts via a pluggable key-value backend
// (file or Redis) and follows a single lifecycle:
//
//	Unauthenticated -> Authenticated(token, userType) -> Unauthenticated
//
// Only the login and logout flows write the session; everything else reads
// it, at request-signing time, through the TokenSource adapter.
package session

import (
	"context"

	"github.com/searchcasa/scadmin/pkg/api"
)

// UserType is the principal kind selected at login time. It decides which
// login endpoint is used and is persisted alongside the token.
type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeStaff UserType = "staff"
)

// Session is the persisted client session state.
type Session struct {
	Token       string   `yaml:"token" json:"token"`
	UserType    UserType `yaml:"user_type" json:"user_type"`
	Permissions []string `yaml:"permissions" json:"permissions"`
	LoggedIn    bool     `yaml:"logged_in" json:"logged_in"`
}

// Authenticated reports whether the session holds a live login.
func (s Session) Authenticated() bool {
	return s.LoggedIn && s.Token != ""
}

// Store persists the session across process restarts. Load on an empty
// backend returns the zero (unauthenticated) session, not an error.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// TokenSource adapts a Store to api.TokenSource. The token is read fresh on
// every request; a load failure degrades to an unauthenticated request
// rather than blocking the call.
type TokenSource struct {
	store Store
}

// NewTokenSource wraps a store for request signing.
func NewTokenSource(store Store) *TokenSource {
	return &TokenSource{store: store}
}

// Token implements api.TokenSource.
func (t *TokenSource) Token() string {
	s, err := t.store.Load()
	if err != nil {
		return ""
	}
	return s.Token
}

// Logout ends the session. The server notification is best-effort; the
// local session is cleared unconditionally, even when the server call fails.
func Logout(ctx context.Context, auth *api.AuthService, store Store) error {
	auth.Logout(ctx)
	return store.Clear()
}
