// Package orders tracks placed orders and their delivery progress.
package orders

import (
	"context"
	"sync"
	"time"

	"terrano-storefront/internal/domain"
)

// MemoryRepository is an in-memory order store. Orders survive only for
// the process lifetime; durable storage is out of scope for this
// snapshot.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	seq    []string
}

// NewMemoryRepository creates an empty order store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

// Create stores a new order.
func (r *MemoryRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := cloneOrder(order)
	r.orders[order.ID] = copied
	r.seq = append(r.seq, order.ID)
	return nil
}

// GetByID returns an order by id.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List returns all orders, newest first.
func (r *MemoryRepository) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		orders = append(orders, cloneOrder(r.orders[r.seq[i]]))
	}
	return orders, nil
}

// UpdateStatus transitions an order to a new status and returns the
// updated order.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	copied := *order
	copied.Lines = append([]domain.CartLine(nil), order.Lines...)
	return &copied
}
