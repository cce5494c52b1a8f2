// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"cbook/internal/api"
	"cbook/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// command tests. It mirrors the backend's observable behavior: conjunctive
// case-insensitive substring filters, 201 on create, 204 on delete, and a
// snapshot refreshed with the last-used filter after every mutation.
type FakeService struct {
	mu         sync.Mutex
	contacts   []service.Contact
	nextID     int64
	lastFilter service.Filter
	snapshot   []service.Contact
	loggedIn   bool
	users      map[string]string // email -> password

	// Error injection: a non-nil entry makes that operation fail at the
	// transport level (as if the backend were unreachable).
	RegisterErr error
	LoginErr    error
	RefreshErr  error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	UpcomingErr error
	MeErr       error

	// RejectAll, when non-zero, makes every authenticated operation answer
	// with this HTTP status (e.g. 401 for an expired token).
	RejectAll int
}

// NewFakeService creates an empty fake with no users and no contacts.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		users:  make(map[string]string),
	}
}

// AddUser seeds a registered, verified account.
func (f *FakeService) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
}

// AddContact seeds a row and returns its server-assigned id.
func (f *FakeService) AddContact(first, last, email, phone, birthday string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.contacts = append(f.contacts, service.Contact{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Birthday:  birthday,
	})
	return id
}

// SetLoggedIn marks the fake session state without going through Login.
func (f *FakeService) SetLoggedIn(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = v
}

func (f *FakeService) Register(ctx context.Context, email, password string) (api.Envelope, error) {
	if f.RegisterErr != nil {
		return api.Envelope{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return api.NewJSON(409, map[string]string{"detail": "user already exists"}), nil
	}
	f.users[email] = password
	return api.NewJSON(201, map[string]any{"id": 1, "email": email, "is_verified": false}), nil
}

func (f *FakeService) Login(ctx context.Context, email, password string) (api.Envelope, error) {
	if f.LoginErr != nil {
		return api.Envelope{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users[email] != password || password == "" {
		return api.NewJSON(401, map[string]string{"detail": "Invalid credentials"}), nil
	}
	f.loggedIn = true
	return api.NewJSON(200, map[string]string{
		"access_token":  "fake-access",
		"refresh_token": "fake-refresh",
	}), nil
}

func (f *FakeService) VerifyEmail(ctx context.Context, token string) (api.Envelope, error) {
	if token == "" {
		return api.NewJSON(400, map[string]string{"detail": "Invalid token"}), nil
	}
	return api.NewJSON(200, map[string]string{"message": "Email verified"}), nil
}

func (f *FakeService) ForgotPassword(ctx context.Context, email string) (api.Envelope, error) {
	return api.NewJSON(200, map[string]string{"message": "Reset email sent"}), nil
}

func (f *FakeService) ResetPassword(ctx context.Context, token, newPassword string) (api.Envelope, error) {
	if token == "" {
		return api.NewJSON(400, map[string]string{"detail": "Invalid token"}), nil
	}
	return api.NewJSON(200, map[string]string{"message": "Password updated"}), nil
}

func (f *FakeService) Refresh(ctx context.Context) (api.Envelope, error) {
	if f.RefreshErr != nil {
		return api.Envelope{}, f.RefreshErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loggedIn {
		return api.NewJSON(401, map[string]string{"detail": "Invalid refresh token"}), nil
	}
	return api.NewJSON(200, map[string]string{"access_token": "fake-access-2"}), nil
}

func (f *FakeService) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = false
	return nil
}

func (f *FakeService) ListContacts(ctx context.Context, filter service.Filter) ([]service.Contact, api.Envelope, error) {
	if f.ListErr != nil {
		return nil, api.Envelope{}, f.ListErr
	}
	if env, rejected := f.reject(); rejected {
		return nil, env, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.match(filter)
	f.lastFilter = filter
	f.snapshot = rows
	return rows, api.NewJSON(200, rows), nil
}

func (f *FakeService) CreateContact(ctx context.Context, c service.NewContact) (api.Envelope, error) {
	if f.CreateErr != nil {
		return api.Envelope{}, f.CreateErr
	}
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row := service.Contact{
		ID:        f.nextID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday,
		Extra:     c.Extra,
	}
	f.nextID++
	f.contacts = append(f.contacts, row)
	f.snapshot = f.match(f.lastFilter)
	return api.NewJSON(201, row), nil
}

func (f *FakeService) UpdateContact(ctx context.Context, id int64, p service.ContactPatch) (api.Envelope, error) {
	if f.UpdateErr != nil {
		return api.Envelope{}, f.UpdateErr
	}
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contacts {
		if f.contacts[i].ID != id {
			continue
		}
		applyPatch(&f.contacts[i], p)
		f.snapshot = f.match(f.lastFilter)
		return api.NewJSON(200, f.contacts[i]), nil
	}
	return api.NewJSON(404, map[string]string{"detail": "Contact not found"}), nil
}

func (f *FakeService) DeleteContact(ctx context.Context, id int64) (api.Envelope, error) {
	if f.DeleteErr != nil {
		return api.Envelope{}, f.DeleteErr
	}
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			f.snapshot = f.match(f.lastFilter)
			return api.NewText(204, ""), nil
		}
	}
	return api.NewJSON(404, map[string]string{"detail": "Contact not found"}), nil
}

func (f *FakeService) UpcomingBirthdays(ctx context.Context, days int) ([]service.Contact, api.Envelope, error) {
	if f.UpcomingErr != nil {
		return nil, api.Envelope{}, f.UpcomingErr
	}
	if env, rejected := f.reject(); rejected {
		return nil, env, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	// The fake has no calendar; every contact with a birthday qualifies.
	var rows []service.Contact
	for _, c := range f.contacts {
		if c.Birthday != "" {
			rows = append(rows, c)
		}
	}
	return rows, api.NewJSON(200, rows), nil
}

func (f *FakeService) Snapshot() []service.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Contact, len(f.snapshot))
	copy(out, f.snapshot)
	return out
}

func (f *FakeService) Me(ctx context.Context) (api.Envelope, error) {
	if f.MeErr != nil {
		return api.Envelope{}, f.MeErr
	}
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	return api.NewJSON(200, map[string]any{"id": 1, "email": "me@example.com", "role": "user"}), nil
}

func (f *FakeService) UploadAvatar(ctx context.Context, filename string, content io.Reader) (api.Envelope, error) {
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return api.Envelope{}, err
	}
	return api.NewJSON(200, map[string]string{"avatar_url": "http://avatars.example/" + filename}), nil
}

func (f *FakeService) SetDefaultAvatar(ctx context.Context, url string) (api.Envelope, error) {
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	return api.NewJSON(200, map[string]string{"default_avatar": url}), nil
}

func (f *FakeService) DefaultAvatar(ctx context.Context) (api.Envelope, error) {
	if env, rejected := f.reject(); rejected {
		return env, nil
	}
	return api.NewJSON(200, map[string]string{"default_avatar": "http://avatars.example/default.png"}), nil
}

func (f *FakeService) Ping(ctx context.Context) (api.Envelope, error) {
	return api.NewText(200, "<html>docs</html>"), nil
}

func (f *FakeService) reject() (api.Envelope, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RejectAll != 0 {
		return api.NewJSON(f.RejectAll, map[string]string{"detail": "Not authenticated"}), true
	}
	return api.Envelope{}, false
}

// match applies the conjunctive case-insensitive substring filter, the way
// the backend's ilike %x% queries behave.
func (f *FakeService) match(filter service.Filter) []service.Contact {
	var rows []service.Contact
	for _, c := range f.contacts {
		if containsFold(c.FirstName, filter.FirstName) &&
			containsFold(c.LastName, filter.LastName) &&
			containsFold(c.Email, filter.Email) {
			rows = append(rows, c)
		}
	}
	return rows
}

func applyPatch(c *service.Contact, p service.ContactPatch) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Birthday != nil {
		c.Birthday = *p.Birthday
	}
	if p.Extra != nil {
		c.Extra = p.Extra
	}
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
