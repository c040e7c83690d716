package cart

import (
	"sync"

	"terrano-storefront/internal/domain"
)

// Subscriber receives every new cart state, synchronously, in mutation
// order. Callbacks run while the store lock is held, so they must not
// call back into the store.
type Subscriber func(domain.CartState)

// Store owns the current cart state for one shopper. All mutations go
// through the ledger's Apply, so subscribers only ever observe fully
// consistent states.
type Store struct {
	mu          sync.Mutex
	state       domain.CartState
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		state:       domain.CartState{Lines: []domain.CartLine{}},
		subscribers: make(map[int]Subscriber),
	}
}

// State returns a snapshot of the current cart state.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Subscribe registers a subscriber and returns an unsubscribe function.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Dispatch applies an action and publishes the new state. It returns the
// state subscribers observed.
func (s *Store) Dispatch(action Action) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.state, action)
	snapshot := cloneState(s.state)
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
	return snapshot
}

// AddItem adds a line, or bumps its quantity when it already exists.
func (s *Store) AddItem(item domain.CartLine) domain.CartState {
	return s.Dispatch(Action{Type: AddItem, Item: item})
}

// RemoveItem deletes a line; unknown ids are a no-op.
func (s *Store) RemoveItem(id string) domain.CartState {
	return s.Dispatch(Action{Type: RemoveItem, ItemID: id})
}

// UpdateQuantity sets a line's quantity; qty <= 0 removes the line.
func (s *Store) UpdateQuantity(id string, qty int) domain.CartState {
	return s.Dispatch(Action{Type: UpdateQuantity, ItemID: id, Quantity: qty})
}

// IncreaseQuantity bumps a line's quantity by one.
func (s *Store) IncreaseQuantity(id string) domain.CartState {
	return s.Dispatch(Action{Type: IncreaseQuantity, ItemID: id})
}

// DecreaseQuantity drops a line's quantity by one, removing it at one.
func (s *Store) DecreaseQuantity(id string) domain.CartState {
	return s.Dispatch(Action{Type: DecreaseQuantity, ItemID: id})
}

// Clear empties the cart, preserving the panel visibility flag.
func (s *Store) Clear() domain.CartState {
	return s.Dispatch(Action{Type: ClearCart})
}

// Open shows the cart side panel.
func (s *Store) Open() domain.CartState {
	return s.Dispatch(Action{Type: OpenCart})
}

// Close hides the cart side panel.
func (s *Store) Close() domain.CartState {
	return s.Dispatch(Action{Type: CloseCart})
}
