package account_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbook/internal/account"
	"cbook/internal/api"
	"cbook/internal/credstore"
	"cbook/internal/testutil"
)

func newClient(t *testing.T) (*account.Client, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend()
	t.Cleanup(backend.Close)

	creds := credstore.NewMemStore()
	require.NoError(t, creds.Set(credstore.Access, backend.IssueToken()))
	return account.NewClient(api.New(backend.URL(), creds)), backend
}

func TestMe(t *testing.T) {
	c, _ := newClient(t)

	env, err := c.Me(context.Background())
	require.NoError(t, err)
	require.True(t, env.OK)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, env.Decode(&me))
	assert.Equal(t, "me@example.com", me.Email)
	assert.Equal(t, "user", me.Role)
}

func TestMe_RequiresAuth(t *testing.T) {
	backend := testutil.NewBackend()
	t.Cleanup(backend.Close)
	c := account.NewClient(api.New(backend.URL(), credstore.NewMemStore()))

	env, err := c.Me(context.Background())
	require.NoError(t, err, "a 401 is a result, not an error")
	assert.False(t, env.OK)
	assert.Equal(t, 401, env.Status)
}

func TestUploadAvatar_SendsFileField(t *testing.T) {
	c, _ := newClient(t)

	env, err := c.UploadAvatar(context.Background(), "me.png", strings.NewReader("pngbytes"))
	require.NoError(t, err)
	require.True(t, env.OK)

	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	require.NoError(t, env.Decode(&resp))
	assert.Equal(t, "http://avatars.example/me.png", resp.AvatarURL)
}

func TestDefaultAvatar_SetThenGet(t *testing.T) {
	c, _ := newClient(t)

	env, err := c.SetDefaultAvatar(context.Background(), "http://cdn.example/default.png")
	require.NoError(t, err)
	require.True(t, env.OK)

	env, err = c.DefaultAvatar(context.Background())
	require.NoError(t, err)
	require.True(t, env.OK)

	var resp struct {
		DefaultAvatar string `json:"default_avatar"`
	}
	require.NoError(t, env.Decode(&resp))
	assert.Equal(t, "http://cdn.example/default.png", resp.DefaultAvatar)
}

func TestPing_NonJSONBody(t *testing.T) {
	c, _ := newClient(t)

	env, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, env.OK)
	assert.Equal(t, 200, env.Status)
	assert.False(t, env.IsJSON())
	assert.Contains(t, env.Data, "docs")
}
