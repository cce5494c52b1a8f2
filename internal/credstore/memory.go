package credstore

import "sync"

// MemStore is an in-memory Store, used by tests and embeddable callers that
// do not want durable credentials.
type MemStore struct {
	mu     sync.Mutex
	tokens map[Kind]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tokens: make(map[Kind]string)}
}

// Get implements Store.
func (s *MemStore) Get(kind Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[kind]
}

// Set implements Store.
func (s *MemStore) Set(kind Kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.tokens, kind)
		return nil
	}
	s.tokens[kind] = value
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[Kind]string)
	return nil
}
