// Package service defines the backend-agnostic interface for contact and
// session operations.
package service

import (
	"context"
	"io"

	"cbook/internal/api"
)

// Service is the interface commands talk to. All backend calls go through
// it; commands never touch HTTP directly.
//
// Every method that reaches the server returns an api.Envelope alongside an
// error. The error is non-nil only for transport-class failures (the
// request never produced an HTTP response); application failures of any
// status arrive inside the envelope with OK=false.
type Service interface {
	// Register creates an account. Fire-and-report: it never touches the
	// stored credentials regardless of outcome.
	Register(ctx context.Context, email, password string) (api.Envelope, error)

	// Login submits form-encoded credentials. On success the returned
	// access token (and refresh token, if present) are stored; on failure
	// the stored credentials are left byte-identical.
	Login(ctx context.Context, email, password string) (api.Envelope, error)

	// VerifyEmail, ForgotPassword and ResetPassword are independent calls;
	// none of them mutates session state. Password reset does not log in.
	VerifyEmail(ctx context.Context, token string) (api.Envelope, error)
	ForgotPassword(ctx context.Context, email string) (api.Envelope, error)
	ResetPassword(ctx context.Context, token, newPassword string) (api.Envelope, error)

	// Refresh submits the stored refresh token. On success only the access
	// token is replaced; on failure the session is left as-is. There is no
	// automatic refresh anywhere: callers invoke this explicitly.
	Refresh(ctx context.Context) (api.Envelope, error)

	// Logout clears both tokens locally. No server call is made.
	Logout() error

	// ListContacts fetches the server-ordered rows matching the filter and,
	// on success, replaces the rendered snapshot. Rows are nil unless the
	// envelope is OK.
	ListContacts(ctx context.Context, f Filter) ([]Contact, api.Envelope, error)

	// CreateContact, UpdateContact and DeleteContact issue their mutation
	// and then unconditionally refresh the snapshot with the last-used
	// filter. The returned envelope is the mutation's, not the refresh's.
	CreateContact(ctx context.Context, c NewContact) (api.Envelope, error)
	UpdateContact(ctx context.Context, id int64, p ContactPatch) (api.Envelope, error)
	DeleteContact(ctx context.Context, id int64) (api.Envelope, error)

	// UpcomingBirthdays is a read-only view; it never touches the snapshot.
	UpcomingBirthdays(ctx context.Context, days int) ([]Contact, api.Envelope, error)

	// Snapshot returns a copy of the rows from the last successful fetch.
	Snapshot() []Contact

	// Me returns the current user's profile.
	Me(ctx context.Context) (api.Envelope, error)

	// UploadAvatar uploads an avatar image as a multipart file part.
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (api.Envelope, error)

	// SetDefaultAvatar sets the instance-wide default avatar (admin only).
	SetDefaultAvatar(ctx context.Context, url string) (api.Envelope, error)

	// DefaultAvatar returns the instance-wide default avatar.
	DefaultAvatar(ctx context.Context) (api.Envelope, error)

	// Ping probes the backend's docs endpoint for reachability.
	Ping(ctx context.Context) (api.Envelope, error)
}
