// Package contacts keeps a locally rendered contact list consistent with
// server state.
//
// Reconciliation is full-replace: after any mutation the list is re-fetched
// with the last-used filter and the snapshot is swapped wholesale. The
// client never patches rows speculatively, so the rendered state is always
// a real server response.
package contacts

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"cbook/internal/api"
	"cbook/internal/service"
)

// Sync is the collection synchronizer. Safe for concurrent use.
//
// Every fetch is tagged with a monotonically increasing sequence number.
// A response that arrives after a newer fetch was issued is discarded
// instead of overwriting the snapshot, so the final rendered state follows
// the most recent user intent even when completions interleave.
type Sync struct {
	api *api.Client

	mu         sync.Mutex
	issued     uint64 // sequence of the newest fetch handed out
	applied    uint64 // sequence of the fetch currently in the snapshot
	lastFilter service.Filter
	snapshot   []service.Contact
}

// NewSync creates a synchronizer over the given request client.
func NewSync(c *api.Client) *Sync {
	return &Sync{api: c}
}

// List fetches the rows matching f, server-ordered, and replaces the
// snapshot on success. Omitted filter fields never appear in the query
// string. Rows are nil unless the envelope is OK.
func (s *Sync) List(ctx context.Context, f service.Filter) ([]service.Contact, api.Envelope, error) {
	seq := s.begin(f)

	env, err := s.api.Get(ctx, "/contacts", filterQuery(f))
	if err != nil || !env.OK {
		return nil, env, err
	}

	var rows []service.Contact
	if err := env.Decode(&rows); err != nil {
		return nil, env, fmt.Errorf("decode contact list: %w", err)
	}
	s.finish(seq, rows)
	return rows, env, nil
}

// Create posts a new contact, then refreshes the snapshot with the
// last-used filter. The returned envelope is the mutation's own; the
// refresh outcome is not surfaced (a failed refresh simply leaves the
// previous snapshot in place).
func (s *Sync) Create(ctx context.Context, c service.NewContact) (api.Envelope, error) {
	env, err := s.api.PostJSON(ctx, "/contacts", c)
	if err != nil {
		return env, err
	}
	s.refresh(ctx)
	return env, nil
}

// Update sends a partial update for the given row, then refreshes.
func (s *Sync) Update(ctx context.Context, id int64, p service.ContactPatch) (api.Envelope, error) {
	env, err := s.api.PutJSON(ctx, fmt.Sprintf("/contacts/%d", id), p)
	if err != nil {
		return env, err
	}
	s.refresh(ctx)
	return env, nil
}

// Delete removes the given row, then refreshes.
func (s *Sync) Delete(ctx context.Context, id int64) (api.Envelope, error) {
	env, err := s.api.Delete(ctx, fmt.Sprintf("/contacts/%d", id))
	if err != nil {
		return env, err
	}
	s.refresh(ctx)
	return env, nil
}

// Upcoming fetches contacts with birthdays in the next days days. It is an
// independent view and never touches the snapshot or the remembered filter.
func (s *Sync) Upcoming(ctx context.Context, days int) ([]service.Contact, api.Envelope, error) {
	env, err := s.api.Get(ctx, "/contacts/birthdays/upcoming", url.Values{
		"days": {strconv.Itoa(days)},
	})
	if err != nil || !env.OK {
		return nil, env, err
	}
	var rows []service.Contact
	if err := env.Decode(&rows); err != nil {
		return nil, env, fmt.Errorf("decode upcoming list: %w", err)
	}
	return rows, env, nil
}

// Snapshot returns a copy of the rows from the last successfully applied
// fetch.
func (s *Sync) Snapshot() []service.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Contact, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// LastFilter returns the filter of the most recently issued fetch.
func (s *Sync) LastFilter() service.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFilter
}

// refresh re-runs List with the last-used filter, discarding the result.
// Mutations call this unconditionally, mirroring the reconciliation
// contract: the snapshot only ever changes through a real list response.
func (s *Sync) refresh(ctx context.Context) {
	_, _, _ = s.List(ctx, s.LastFilter())
}

// begin registers a fetch and returns its sequence number.
func (s *Sync) begin(f service.Filter) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.lastFilter = f
	return s.issued
}

// finish applies a completed fetch unless a newer one was issued meanwhile.
func (s *Sync) finish(seq uint64, rows []service.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued || seq <= s.applied {
		// Stale: a newer fetch is in flight or already rendered.
		return
	}
	s.applied = seq
	s.snapshot = rows
}

// filterQuery encodes f conjunctively, omitting empty fields entirely.
func filterQuery(f service.Filter) url.Values {
	q := url.Values{}
	if f.FirstName != "" {
		q.Set("first_name", f.FirstName)
	}
	if f.LastName != "" {
		q.Set("last_name", f.LastName)
	}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	return q
}
