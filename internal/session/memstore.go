package session

import "sync"

// MemStore keeps session records in a mutex-guarded map. Suitable for
// single-process deployments and tests; state does not survive restarts.
type MemStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[string]Record)}
}

func (s *MemStore) Put(account string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[account] = rec
	return nil
}

func (s *MemStore) Get(account string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[account]
	return rec, ok, nil
}

func (s *MemStore) Delete(account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, account)
	return nil
}

func (s *MemStore) ScanAll() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.recs))
	for _, rec := range s.recs {
		out = append(out, rec)
	}
	return out, nil
}
