package cart

import "sync"

// Manager hands out one in-memory cart store per user. Carts are ephemeral
// and are not persisted across restarts.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager returns an empty cart manager.
func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

// For returns the user's cart, creating it on first use.
func (m *Manager) For(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[userID]
	if !ok {
		store = NewStore()
		m.stores[userID] = store
	}
	return store
}

// Drop discards the user's cart entirely, e.g. on logout.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()
}
