package cart

import "sync"

// Registry hands out one Store per user session, created lazily on first use.
type Registry struct {
	mu     sync.Mutex
	stores map[uint]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[uint]*Store)}
}

func (r *Registry) Get(userID uint) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[userID]
	if !ok {
		s = NewStore()
		r.stores[userID] = s
	}
	return s
}

// Drop forgets a session's cart entirely, e.g. on sign-out.
func (r *Registry) Drop(userID uint) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}
