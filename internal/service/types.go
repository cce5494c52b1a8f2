// Package service defines the backend-agnostic interface for contact and
// session operations.
package service

// Contact is a single row, owned by the server. The client holds read-only,
// fully-replaced snapshots after every list fetch; no field is ever
// fabricated client-side.
type Contact struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Birthday  string  `json:"birthday"` // YYYY-MM-DD, opaque to the client
	Extra     *string `json:"extra"`
}

// NewContact carries the fields for a create. Extra serializes as null when
// unset, matching what the backend expects.
type NewContact struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Birthday  string  `json:"birthday"`
	Extra     *string `json:"extra"`
}

// ContactPatch is a partial update. Nil fields are omitted from the request
// body entirely, so the server only touches what the caller set.
type ContactPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Birthday  *string `json:"birthday,omitempty"`
	Extra     *string `json:"extra,omitempty"`
}

// IsZero reports whether no field is set.
func (p ContactPatch) IsZero() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Birthday == nil && p.Extra == nil
}

// Filter narrows a contact listing. Fields combine conjunctively; empty
// fields are omitted from the query string, never sent as empty values.
type Filter struct {
	FirstName string
	LastName  string
	Email     string
}
