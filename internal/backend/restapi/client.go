// Package restapi implements the service.Service interface against the
// contacts REST backend.
package restapi

import (
	"context"
	"io"
	"os"

	"cbook/internal/account"
	"cbook/internal/api"
	"cbook/internal/config"
	"cbook/internal/contacts"
	"cbook/internal/credstore"
	"cbook/internal/service"
	"cbook/internal/session"
)

// Client wires the credential store, request client, session manager and
// collection synchronizer into one service. Commands only ever see the
// service.Service interface.
type Client struct {
	creds    credstore.Store
	sessions *session.Manager
	sync     *contacts.Sync
	users    *account.Client
}

var _ service.Service = (*Client)(nil)

// New creates a client from config. The credential store is injected into
// the request client and session manager explicitly, so tests can swap in
// an in-memory store via NewWithStore.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	return NewWithStore(cfg, credstore.NewFileStore(cfg.CredentialsPath())), nil
}

// NewWithStore creates a client over an explicit credential store.
func NewWithStore(cfg *config.Config, creds credstore.Store) *Client {
	apiClient := api.New(cfg.BaseURL, creds)
	if cfg.Debug {
		apiClient.DebugWriter = os.Stderr
	}
	return &Client{
		creds:    creds,
		sessions: session.NewManager(apiClient, creds),
		sync:     contacts.NewSync(apiClient),
		users:    account.NewClient(apiClient),
	}
}

func (c *Client) Register(ctx context.Context, email, password string) (api.Envelope, error) {
	return c.sessions.Register(ctx, email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (api.Envelope, error) {
	return c.sessions.Login(ctx, email, password)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (api.Envelope, error) {
	return c.sessions.VerifyEmail(ctx, token)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (api.Envelope, error) {
	return c.sessions.ForgotPassword(ctx, email)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (api.Envelope, error) {
	return c.sessions.ResetPassword(ctx, token, newPassword)
}

func (c *Client) Refresh(ctx context.Context) (api.Envelope, error) {
	return c.sessions.Refresh(ctx)
}

func (c *Client) Logout() error {
	return c.sessions.Logout()
}

func (c *Client) ListContacts(ctx context.Context, f service.Filter) ([]service.Contact, api.Envelope, error) {
	return c.sync.List(ctx, f)
}

func (c *Client) CreateContact(ctx context.Context, nc service.NewContact) (api.Envelope, error) {
	return c.sync.Create(ctx, nc)
}

func (c *Client) UpdateContact(ctx context.Context, id int64, p service.ContactPatch) (api.Envelope, error) {
	return c.sync.Update(ctx, id, p)
}

func (c *Client) DeleteContact(ctx context.Context, id int64) (api.Envelope, error) {
	return c.sync.Delete(ctx, id)
}

func (c *Client) UpcomingBirthdays(ctx context.Context, days int) ([]service.Contact, api.Envelope, error) {
	return c.sync.Upcoming(ctx, days)
}

func (c *Client) Snapshot() []service.Contact {
	return c.sync.Snapshot()
}

func (c *Client) Me(ctx context.Context) (api.Envelope, error) {
	return c.users.Me(ctx)
}

func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (api.Envelope, error) {
	return c.users.UploadAvatar(ctx, filename, content)
}

func (c *Client) SetDefaultAvatar(ctx context.Context, url string) (api.Envelope, error) {
	return c.users.SetDefaultAvatar(ctx, url)
}

func (c *Client) DefaultAvatar(ctx context.Context) (api.Envelope, error) {
	return c.users.DefaultAvatar(ctx)
}

func (c *Client) Ping(ctx context.Context) (api.Envelope, error) {
	return c.users.Ping(ctx)
}
