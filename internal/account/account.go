// Package account covers the user-profile endpoints: current user, avatar
// upload, and the instance-wide default avatar.
package account

import (
	"context"
	"io"
	"net/url"

	"cbook/internal/api"
)

// Client issues the /users endpoints. Stateless; every result is the
// uniform envelope.
type Client struct {
	api *api.Client
}

// NewClient creates an account client over the given request client.
func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// Me returns the current user's profile.
func (c *Client) Me(ctx context.Context) (api.Envelope, error) {
	return c.api.Get(ctx, "/users/me", nil)
}

// UploadAvatar uploads an avatar image. The backend expects a multipart
// body with the file under the field name "file".
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (api.Envelope, error) {
	return c.api.PostMultipart(ctx, "/users/me/avatar", "file", filename, content)
}

// SetDefaultAvatar sets the instance default avatar URL. Admin only; the
// server rejects everyone else and the envelope carries the refusal.
func (c *Client) SetDefaultAvatar(ctx context.Context, avatarURL string) (api.Envelope, error) {
	return c.api.Post(ctx, "/users/admin/default-avatar", url.Values{"url": {avatarURL}})
}

// DefaultAvatar returns the instance default avatar.
func (c *Client) DefaultAvatar(ctx context.Context) (api.Envelope, error) {
	return c.api.Get(ctx, "/users/default-avatar", nil)
}

// Ping probes the backend's docs page. It is the one endpoint whose
// response is expected to be non-JSON.
func (c *Client) Ping(ctx context.Context) (api.Envelope, error) {
	return c.api.Get(ctx, "/docs", nil)
}
