package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbook/internal/api"
	"cbook/internal/credstore"
	"cbook/internal/session"
	"cbook/internal/testutil"
)

func newManager(t *testing.T) (*session.Manager, *testutil.Backend, credstore.Store) {
	t.Helper()
	backend := testutil.NewBackend()
	t.Cleanup(backend.Close)

	creds := credstore.NewMemStore()
	mgr := session.NewManager(api.New(backend.URL(), creds), creds)
	return mgr, backend, creds
}

func TestLogin_StoresBothTokens(t *testing.T) {
	mgr, backend, creds := newManager(t)
	backend.AddUser("a@x.com", "p")

	env, err := mgr.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	require.True(t, env.OK)

	assert.NotEmpty(t, creds.Get(credstore.Access))
	assert.NotEmpty(t, creds.Get(credstore.Refresh))
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	mgr, backend, creds := newManager(t)
	backend.AddUser("a@x.com", "p")
	require.NoError(t, creds.Set(credstore.Access, "old-access"))
	require.NoError(t, creds.Set(credstore.Refresh, "old-refresh"))

	env, err := mgr.Login(context.Background(), "a@x.com", "wrong")
	require.NoError(t, err)
	require.False(t, env.OK)
	assert.Equal(t, 401, env.Status)

	assert.Equal(t, "old-access", creds.Get(credstore.Access))
	assert.Equal(t, "old-refresh", creds.Get(credstore.Refresh))
}

func TestRefresh_ReplacesOnlyAccessToken(t *testing.T) {
	mgr, backend, creds := newManager(t)
	backend.AddUser("a@x.com", "p")

	env, err := mgr.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	require.True(t, env.OK)

	accessBefore := creds.Get(credstore.Access)
	refreshBefore := creds.Get(credstore.Refresh)

	env, err = mgr.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, env.OK)

	assert.NotEqual(t, accessBefore, creds.Get(credstore.Access))
	assert.Equal(t, refreshBefore, creds.Get(credstore.Refresh), "refresh token is not rotated")
}

func TestRefresh_FailureLeavesSessionAsIs(t *testing.T) {
	mgr, _, creds := newManager(t)
	require.NoError(t, creds.Set(credstore.Access, "stale-access"))
	require.NoError(t, creds.Set(credstore.Refresh, "bogus-refresh"))

	env, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	require.False(t, env.OK)

	// No forced logout: the caller decides what a failed refresh means.
	assert.Equal(t, "stale-access", creds.Get(credstore.Access))
	assert.Equal(t, "bogus-refresh", creds.Get(credstore.Refresh))
}

func TestRegister_DoesNotTouchSession(t *testing.T) {
	mgr, _, creds := newManager(t)

	env, err := mgr.Register(context.Background(), "new@x.com", "p")
	require.NoError(t, err)
	require.True(t, env.OK)
	assert.Equal(t, 201, env.Status)

	assert.Empty(t, creds.Get(credstore.Access))
	assert.Empty(t, creds.Get(credstore.Refresh))
}

func TestLogout_ClearsBothTokens(t *testing.T) {
	mgr, backend, creds := newManager(t)
	backend.AddUser("a@x.com", "p")

	_, err := mgr.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)

	require.NoError(t, mgr.Logout())
	assert.Empty(t, creds.Get(credstore.Access))
	assert.Empty(t, creds.Get(credstore.Refresh))
}

func TestVerifyForgotReset_AreStateless(t *testing.T) {
	mgr, _, creds := newManager(t)

	env, err := mgr.VerifyEmail(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, env.OK)

	env, err = mgr.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, env.OK)

	env, err = mgr.ResetPassword(context.Background(), "tok", "newpass")
	require.NoError(t, err)
	assert.True(t, env.OK)

	// Password reset does not auto-login.
	assert.Empty(t, creds.Get(credstore.Access))
	assert.Empty(t, creds.Get(credstore.Refresh))
}
