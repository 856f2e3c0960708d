package api

import (
	"context"
	"fmt"
	"net/http"
)

// Auth API paths.
const (
	pathPreAuthToken = "/api/token/generate-access-token"
	pathAdminLogin   = "/api/admin/auth/login"
	pathStaffLogin   = "/api/admin/staff/auth/login"
	pathLogout       = "/api/admin/auth/logout"
)

// AuthService implements the authentication flows. Login is a two-step
// protocol: a short-lived pre-auth token is fetched first and used as the
// bearer on the credentials POST. The backend requires this handshake token
// on the login call itself, separate from any session credential.
type AuthService struct {
	c *Client
}

// NewAuthService creates an auth service on top of the given client.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// PreAuthToken obtains the short-lived handshake token. The request is
// unauthenticated regardless of any active session.
func (s *AuthService) PreAuthToken(ctx context.Context) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := s.c.do(ctx, http.MethodGet, pathPreAuthToken, nil, nil, &resp, withBearer("")); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &DecodeError{Err: fmt.Errorf("pre-auth response carried no token")}
	}
	return resp.Token, nil
}

// Login signs in an admin principal. The returned session token is NOT
// persisted by the service; the caller owns the session store.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return s.login(ctx, pathAdminLogin, creds)
}

// StaffLogin signs in a staff principal via the staff endpoint. Same
// two-step shape as Login.
func (s *AuthService) StaffLogin(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return s.login(ctx, pathStaffLogin, creds)
}

func (s *AuthService) login(ctx context.Context, path string, creds Credentials) (*LoginResult, error) {
	preAuth, err := s.PreAuthToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain pre-auth token: %w", err)
	}

	var result LoginResult
	if err := s.c.do(ctx, http.MethodPost, path, creds, nil, &result, withBearer(preAuth)); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout notifies the server that the session is ending. It is best-effort:
// server or network failure is swallowed so local session clearing always
// proceeds. Logout must always succeed locally.
func (s *AuthService) Logout(ctx context.Context) {
	_ = s.c.Do(ctx, http.MethodPost, pathLogout, nil, nil, nil)
}
