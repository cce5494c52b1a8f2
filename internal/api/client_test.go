package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbook/internal/api"
	"cbook/internal/credstore"
)

func TestClient_BearerAttachedWhenTokenStored(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	creds := credstore.NewMemStore()
	require.NoError(t, creds.Set(credstore.Access, "T1"))

	c := api.New(srv.URL, creds)
	_, err := c.Get(context.Background(), "/contacts", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer T1", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_NoBearerWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	_, err := c.Get(context.Background(), "/contacts", nil)
	require.NoError(t, err)

	assert.Empty(t, gotAuth, "no Authorization header without a stored token")
}

func TestClient_JSONContentNegotiation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"message":"hi"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	env, err := c.Get(context.Background(), "/", nil)
	require.NoError(t, err)

	assert.True(t, env.OK)
	assert.Equal(t, 200, env.Status)
	assert.True(t, env.IsJSON())
	assert.Equal(t, map[string]any{"message": "hi"}, env.Data)
}

func TestClient_TextContentNegotiation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>docs</html>"))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	env, err := c.Get(context.Background(), "/docs", nil)
	require.NoError(t, err)

	assert.True(t, env.OK)
	assert.False(t, env.IsJSON())
	assert.Equal(t, "<html>docs</html>", env.Data)
}

func TestClient_ApplicationFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Contact not found"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	env, err := c.Get(context.Background(), "/contacts/99", nil)

	require.NoError(t, err, "4xx must not surface as a Go error")
	assert.False(t, env.OK)
	assert.Equal(t, 404, env.Status)
	assert.Equal(t, map[string]any{"detail": "Contact not found"}, env.Data)
}

func TestClient_TransportFailureIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := api.New(srv.URL, credstore.NewMemStore())
	env, err := c.Get(context.Background(), "/contacts", nil)

	require.Error(t, err)
	assert.Equal(t, api.Envelope{}, env)
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	_, err := c.Get(context.Background(), "/contacts", map[string][]string{"first_name": {"Ann"}})
	require.NoError(t, err)

	assert.Equal(t, "first_name=Ann", gotQuery)
}

func TestClient_PostFormEncodesBody(t *testing.T) {
	var gotCT, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotBody = r.PostFormValue("username")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, credstore.NewMemStore())
	_, err := c.PostForm(context.Background(), "/auth/login", map[string][]string{
		"username": {"a@x.com"},
		"password": {"p"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotCT)
	assert.Equal(t, "a@x.com", gotBody)
}

func TestEnvelope_MarshalShape(t *testing.T) {
	env := api.NewJSON(404, map[string]string{"detail": "nope"})

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"status":404,"data":{"detail":"nope"}}`, string(out))
}

func TestEnvelope_DecodeRejectsText(t *testing.T) {
	env := api.NewText(200, "plain")

	var v any
	assert.Error(t, env.Decode(&v))
}
