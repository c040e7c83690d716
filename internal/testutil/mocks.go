// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the terrano-storefront application.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"terrano-storefront/internal/domain"
)

// Common test errors
var (
	ErrMockNotImplemented = errors.New("mock function not implemented")
	ErrMockNotFound       = errors.New("mock: not found")
)

// MockMenuRepository implements domain.MenuRepository for testing
type MockMenuRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	ListFunc    func(ctx context.Context) ([]*domain.MenuItem, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.MenuItem, error)

	// In-memory storage for simple tests
	Items map[string]*domain.MenuItem
	order []string
}

// NewMockMenuRepository creates a new MockMenuRepository with initialized maps
func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{
		Items: make(map[string]*domain.MenuItem),
	}
}

// Seed adds items to the mock catalog, preserving insertion order
func (m *MockMenuRepository) Seed(items ...*domain.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if _, ok := m.Items[item.ID]; !ok {
			m.order = append(m.order, item.ID)
		}
		m.Items[item.ID] = item
	}
}

func (m *MockMenuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.MenuItem, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.Items[id])
	}
	return result, nil
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if item, ok := m.Items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrMenuItemNotFound
}

// MockOrderRepository implements domain.OrderRepository for testing
type MockOrderRepository struct {
	mu sync.RWMutex

	// Function overrides
	CreateFunc       func(ctx context.Context, order *domain.Order) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Order, error)
	ListFunc         func(ctx context.Context) ([]*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)

	// In-memory storage
	Orders map[string]*domain.Order
}

// NewMockOrderRepository creates a new MockOrderRepository with initialized maps
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		Orders: make(map[string]*domain.Order),
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Orders == nil {
		m.Orders = make(map[string]*domain.Order)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	m.Orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if order, ok := m.Orders[id]; ok {
		return order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.Order, 0, len(m.Orders))
	for _, order := range m.Orders {
		result = append(result, order)
	}
	return result, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.Orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}

// MockPrincipalDirectory implements domain.PrincipalDirectory for testing
type MockPrincipalDirectory struct {
	mu sync.RWMutex

	// Function override
	AuthenticateFunc func(ctx context.Context, email, password string) (*domain.Identity, error)

	// Credential table for simple tests: email -> password
	Passwords  map[string]string
	Identities map[string]*domain.Identity

	// Call tracking
	Attempts []string
}

// NewMockPrincipalDirectory creates a new MockPrincipalDirectory with initialized maps
func NewMockPrincipalDirectory() *MockPrincipalDirectory {
	return &MockPrincipalDirectory{
		Passwords:  make(map[string]string),
		Identities: make(map[string]*domain.Identity),
	}
}

// SeedPrincipal registers a credential pair and the identity it resolves to
func (m *MockPrincipalDirectory) SeedPrincipal(email, password string, identity *domain.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Passwords[email] = password
	m.Identities[email] = identity
}

func (m *MockPrincipalDirectory) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	m.mu.Lock()
	m.Attempts = append(m.Attempts, email)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if stored, ok := m.Passwords[email]; ok && stored == password {
		return m.Identities[email], nil
	}
	return nil, domain.ErrInvalidCredentials
}

// MockEventPublisher implements orders.EventPublisher for testing
type MockEventPublisher struct {
	mu sync.RWMutex

	// Function overrides
	PublishOrderPlacedFunc func(ctx context.Context, order *domain.Order) error
	PublishOrderStatusFunc func(ctx context.Context, order *domain.Order) error

	// Call tracking
	Placed []*domain.Order
	Status []*domain.Order
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	if m.PublishOrderPlacedFunc != nil {
		return m.PublishOrderPlacedFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Placed = append(m.Placed, order)
	return nil
}

func (m *MockEventPublisher) PublishOrderStatus(ctx context.Context, order *domain.Order) error {
	if m.PublishOrderStatusFunc != nil {
		return m.PublishOrderStatusFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Status = append(m.Status, order)
	return nil
}

// MockStatusBroadcaster implements orders.StatusBroadcaster for testing
type MockStatusBroadcaster struct {
	mu sync.RWMutex

	// Call tracking: orderID -> payloads
	Events map[string][][]byte
}

// NewMockStatusBroadcaster creates a new MockStatusBroadcaster
func NewMockStatusBroadcaster() *MockStatusBroadcaster {
	return &MockStatusBroadcaster{
		Events: make(map[string][][]byte),
	}
}

func (m *MockStatusBroadcaster) Broadcast(orderID string, message []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events[orderID] = append(m.Events[orderID], message)
}

// EventsFor returns the payloads broadcast for one order
func (m *MockStatusBroadcaster) EventsFor(orderID string) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]byte{}, m.Events[orderID]...)
}
