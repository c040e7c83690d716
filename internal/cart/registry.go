package cart

import (
	"sync"
	"time"
)

// Registry hands out per-shopper cart stores keyed by cart ID. Entries
// that have not been touched for the TTL are swept so abandoned carts do
// not accumulate.
type Registry struct {
	mu      sync.RWMutex
	stores  map[string]*registryEntry
	ttl     time.Duration
	nowFunc func() time.Time
}

type registryEntry struct {
	store      *Store
	lastAccess time.Time
}

// NewRegistry creates a registry whose carts expire after ttl of
// inactivity.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		stores:  make(map[string]*registryEntry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Get returns the store for a cart ID, creating an empty one on first
// use.
func (r *Registry) Get(cartID string) *Store {
	r.mu.RLock()
	entry, ok := r.stores[cartID]
	r.mu.RUnlock()

	if ok {
		r.mu.Lock()
		entry.lastAccess = r.nowFunc()
		r.mu.Unlock()
		return entry.store
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.stores[cartID]; ok {
		entry.lastAccess = r.nowFunc()
		return entry.store
	}

	entry = &registryEntry{store: NewStore(), lastAccess: r.nowFunc()}
	r.stores[cartID] = entry
	return entry.store
}

// Drop removes a cart from the registry.
func (r *Registry) Drop(cartID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, cartID)
}

// Len returns the number of live carts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}

// Sweep removes carts idle for longer than the TTL and returns how many
// were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	removed := 0
	for id, entry := range r.stores {
		if now.Sub(entry.lastAccess) > r.ttl {
			delete(r.stores, id)
			removed++
		}
	}
	return removed
}
