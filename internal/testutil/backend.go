package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cbook/internal/service"
)

// Backend is an in-process stand-in for the contacts REST service, used by
// wire-level tests. It speaks the real contract: form-encoded login, bearer
// auth, JSON bodies, 201 on create, 204 on delete, conjunctive substring
// filters. Tokens are minted per login with uuid.
type Backend struct {
	Server *httptest.Server

	mu             sync.Mutex
	users          map[string]string // email -> password
	access         map[string]bool
	refresh        map[string]bool
	contacts       []service.Contact
	nextID         int64
	defaultAvatar  string
	lastAuthHeader string

	// BeforeList, when set, runs before every list request is answered.
	// Race tests use it to control completion order.
	BeforeList func(r *http.Request)
}

// NewBackend starts the fake server. Callers must Close it.
func NewBackend() *Backend {
	b := &Backend{
		users:   make(map[string]string),
		access:  make(map[string]bool),
		refresh: make(map[string]bool),
		nextID:  1,
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/register", b.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", b.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-email", b.handleVerify).Methods(http.MethodGet)
	r.HandleFunc("/auth/forgot-password", b.handleForgot).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset-password", b.handleReset).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", b.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/contacts", b.auth(b.handleList)).Methods(http.MethodGet)
	r.HandleFunc("/contacts", b.auth(b.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/contacts/birthdays/upcoming", b.auth(b.handleUpcoming)).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{id:[0-9]+}", b.auth(b.handleUpdate)).Methods(http.MethodPut)
	r.HandleFunc("/contacts/{id:[0-9]+}", b.auth(b.handleDelete)).Methods(http.MethodDelete)
	r.HandleFunc("/users/me", b.auth(b.handleMe)).Methods(http.MethodGet)
	r.HandleFunc("/users/me/avatar", b.auth(b.handleAvatar)).Methods(http.MethodPost)
	r.HandleFunc("/users/admin/default-avatar", b.auth(b.handleSetDefaultAvatar)).Methods(http.MethodPost)
	r.HandleFunc("/users/default-avatar", b.auth(b.handleDefaultAvatar)).Methods(http.MethodGet)
	r.HandleFunc("/docs", b.handleDocs).Methods(http.MethodGet)

	b.Server = httptest.NewServer(r)
	return b
}

// URL returns the backend's base URL.
func (b *Backend) URL() string { return b.Server.URL }

// Close shuts the server down.
func (b *Backend) Close() { b.Server.Close() }

// AddUser seeds a registered account.
func (b *Backend) AddUser(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = password
}

// AddContact seeds a row and returns its id.
func (b *Backend) AddContact(c service.Contact) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.ID = b.nextID
	b.nextID++
	b.contacts = append(b.contacts, c)
	return c.ID
}

// Contacts returns a copy of the server-side rows.
func (b *Backend) Contacts() []service.Contact {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]service.Contact, len(b.contacts))
	copy(out, b.contacts)
	return out
}

// LastAuthHeader returns the Authorization header of the most recent
// authenticated request ("" if none was sent).
func (b *Backend) LastAuthHeader() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuthHeader
}

// IssueToken mints a valid access token without going through login.
func (b *Backend) IssueToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	tok := uuid.NewString()
	b.access[tok] = true
	return tok
}

func (b *Backend) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		b.mu.Lock()
		b.lastAuthHeader = header
		valid := strings.HasPrefix(header, "Bearer ") && b.access[strings.TrimPrefix(header, "Bearer ")]
		b.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next(w, r)
	}
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[body.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "user already exists"})
		return
	}
	b.users[body.Email] = body.Password
	writeJSON(w, http.StatusCreated, map[string]any{"id": len(b.users), "email": body.Email, "is_verified": false})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid form"})
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	b.mu.Lock()
	defer b.mu.Unlock()
	if password == "" || b.users[email] != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		return
	}
	access, refresh := uuid.NewString(), uuid.NewString()
	b.access[access] = true
	b.refresh[refresh] = true
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (b *Backend) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

func (b *Backend) handleForgot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("email") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "email is required as query parameter"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reset email sent"})
}

func (b *Backend) handleReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (b *Backend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.refresh[body.RefreshToken] {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid refresh token"})
		return
	}
	access := uuid.NewString()
	b.access[access] = true
	writeJSON(w, http.StatusOK, map[string]string{"access_token": access})
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	if b.BeforeList != nil {
		b.BeforeList(r)
	}
	q := r.URL.Query()
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := []service.Contact{}
	for _, c := range b.contacts {
		if containsFold(c.FirstName, q.Get("first_name")) &&
			containsFold(c.LastName, q.Get("last_name")) &&
			containsFold(c.Email, q.Get("email")) {
			rows = append(rows, c)
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body service.NewContact
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	row := service.Contact{
		ID:        b.nextID,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		Birthday:  body.Birthday,
		Extra:     body.Extra,
	}
	b.nextID++
	b.contacts = append(b.contacts, row)
	writeJSON(w, http.StatusCreated, row)
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	var patch service.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.contacts {
		if b.contacts[i].ID == id {
			applyPatch(&b.contacts[i], patch)
			writeJSON(w, http.StatusOK, b.contacts[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Contact not found"})
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.contacts {
		if b.contacts[i].ID == id {
			b.contacts = append(b.contacts[:i], b.contacts[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Contact not found"})
}

func (b *Backend) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := []service.Contact{}
	for _, c := range b.contacts {
		if c.Birthday != "" {
			rows = append(rows, c)
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": "me@example.com", "role": "user"})
}

func (b *Backend) handleAvatar(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "file field required"})
		return
	}
	file.Close()
	writeJSON(w, http.StatusOK, map[string]string{"avatar_url": "http://avatars.example/" + header.Filename})
}

func (b *Backend) handleSetDefaultAvatar(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if u == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "url is required"})
		return
	}
	b.mu.Lock()
	b.defaultAvatar = u
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"default_avatar": u})
}

func (b *Backend) handleDefaultAvatar(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"default_avatar": b.defaultAvatar})
}

func (b *Backend) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<html><body>docs</body></html>"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
