// Package session owns the token lifecycle: login, refresh, logout, and the
// auxiliary account flows that never touch session state.
package session

import (
	"context"
	"fmt"
	"net/url"

	"cbook/internal/api"
	"cbook/internal/credstore"
)

// tokenResponse is the login/refresh payload shape.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Manager drives the session state machine. There are two states, logged
// out and logged in, and only Login, Refresh and Logout move between or
// within them; every other operation reports its envelope and leaves the
// credential store untouched.
type Manager struct {
	api   *api.Client
	creds credstore.Store
}

// NewManager creates a manager over the given request client and store.
// The store must be the same one the request client reads bearer tokens
// from, so a successful login is visible to the very next request.
func NewManager(c *api.Client, creds credstore.Store) *Manager {
	return &Manager{api: c, creds: creds}
}

// Register creates an account. Registration does not log in: the server
// commonly requires email verification first, so session state is never
// affected regardless of outcome.
func (m *Manager) Register(ctx context.Context, email, password string) (api.Envelope, error) {
	return m.api.PostJSON(ctx, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Login submits form-encoded credentials (the backend takes the email under
// the form key "username"). On success both tokens are stored; on any
// failure the store is left byte-identical to its pre-call state.
func (m *Manager) Login(ctx context.Context, email, password string) (api.Envelope, error) {
	env, err := m.api.PostForm(ctx, "/auth/login", url.Values{
		"username": {email},
		"password": {password},
	})
	if err != nil || !env.OK {
		return env, err
	}

	var tok tokenResponse
	if err := env.Decode(&tok); err != nil {
		return env, fmt.Errorf("decode token response: %w", err)
	}
	if err := m.creds.Set(credstore.Access, tok.AccessToken); err != nil {
		return env, fmt.Errorf("store access token: %w", err)
	}
	if err := m.creds.Set(credstore.Refresh, tok.RefreshToken); err != nil {
		return env, fmt.Errorf("store refresh token: %w", err)
	}
	return env, nil
}

// VerifyEmail confirms an address with the emailed token.
func (m *Manager) VerifyEmail(ctx context.Context, token string) (api.Envelope, error) {
	return m.api.Get(ctx, "/auth/verify-email", url.Values{"token": {token}})
}

// ForgotPassword asks the server to send a reset email. The bearer header
// rides along when a token is stored, but the flow works logged out too.
func (m *Manager) ForgotPassword(ctx context.Context, email string) (api.Envelope, error) {
	return m.api.Post(ctx, "/auth/forgot-password", url.Values{"email": {email}})
}

// ResetPassword sets a new password with the emailed token. It does not log
// the user in.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) (api.Envelope, error) {
	return m.api.PostJSON(ctx, "/auth/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	})
}

// Refresh trades the stored refresh token for a new access token. Only the
// access token is replaced; the refresh token is not rotated. On failure
// the session is left as-is: interpreting a failed refresh as "log in
// again" is the caller's call, never an automatic one.
func (m *Manager) Refresh(ctx context.Context) (api.Envelope, error) {
	env, err := m.api.PostJSON(ctx, "/auth/refresh", map[string]string{
		"refresh_token": m.creds.Get(credstore.Refresh),
	})
	if err != nil || !env.OK {
		return env, err
	}

	var tok tokenResponse
	if err := env.Decode(&tok); err != nil {
		return env, fmt.Errorf("decode token response: %w", err)
	}
	if err := m.creds.Set(credstore.Access, tok.AccessToken); err != nil {
		return env, fmt.Errorf("store access token: %w", err)
	}
	return env, nil
}

// Logout clears both tokens unconditionally. Purely local: the server is
// not told, so a cached refresh token stays valid until it expires
// server-side.
func (m *Manager) Logout() error {
	return m.creds.Clear()
}
