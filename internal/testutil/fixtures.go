package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"terrano-storefront/internal/domain"
)

// Counter for generating unique IDs
var idCounter atomic.Int64

// nextID generates a unique ID for test fixtures
func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

// MenuItemOptions allows customizing menu item fixture creation
type MenuItemOptions struct {
	ID       string
	Name     string
	Price    float64
	Category string
}

// NewTestMenuItem creates a test menu item with sensible defaults
// Pass options to override specific fields
func NewTestMenuItem(opts ...func(*MenuItemOptions)) *domain.MenuItem {
	o := &MenuItemOptions{
		ID:       nextID("item"),
		Name:     fmt.Sprintf("Test Dish %d", idCounter.Load()),
		Price:    10.0,
		Category: "mains",
	}

	for _, opt := range opts {
		opt(o)
	}

	return &domain.MenuItem{
		ID:       o.ID,
		Name:     o.Name,
		Price:    o.Price,
		Category: o.Category,
	}
}

// WithItemID sets the menu item ID
func WithItemID(id string) func(*MenuItemOptions) {
	return func(o *MenuItemOptions) {
		o.ID = id
	}
}

// WithItemName sets the menu item name
func WithItemName(name string) func(*MenuItemOptions) {
	return func(o *MenuItemOptions) {
		o.Name = name
	}
}

// WithItemPrice sets the menu item price
func WithItemPrice(price float64) func(*MenuItemOptions) {
	return func(o *MenuItemOptions) {
		o.Price = price
	}
}

// NewTestCartLine creates a cart line for tests
func NewTestCartLine(id string, price float64, qty int) domain.CartLine {
	return domain.CartLine{
		ID:       id,
		Name:     "line " + id,
		Price:    price,
		Quantity: qty,
	}
}

// NewTestCartState builds a consistent cart state from lines, deriving
// the totals the same way the ledger does
func NewTestCartState(lines ...domain.CartLine) domain.CartState {
	var subtotal float64
	var count int
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
		count += line.Quantity
	}
	return domain.CartState{
		Lines:     lines,
		Subtotal:  subtotal,
		Tax:       subtotal * 0.20,
		Total:     subtotal * 1.20,
		ItemCount: count,
	}
}

// OrderOptions allows customizing order fixture creation
type OrderOptions struct {
	ID        string
	CartID    string
	Lines     []domain.CartLine
	Status    domain.OrderStatus
	CreatedAt time.Time
}

// NewTestOrder creates a test order with sensible defaults
func NewTestOrder(opts ...func(*OrderOptions)) *domain.Order {
	o := &OrderOptions{
		ID:     nextID("order"),
		CartID: nextID("cart"),
		Lines: []domain.CartLine{
			NewTestCartLine("item-1", 12.5, 2),
		},
		Status:    domain.OrderReceived,
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(o)
	}

	state := NewTestCartState(o.Lines...)
	return &domain.Order{
		ID:        o.ID,
		CartID:    o.CartID,
		Lines:     o.Lines,
		Subtotal:  state.Subtotal,
		Tax:       state.Tax,
		Total:     state.Total,
		ItemCount: state.ItemCount,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.CreatedAt,
	}
}

// WithOrderID sets the order ID
func WithOrderID(id string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.ID = id
	}
}

// WithOrderCartID sets the cart the order came from
func WithOrderCartID(cartID string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.CartID = cartID
	}
}

// WithOrderLines sets the order's frozen cart lines
func WithOrderLines(lines ...domain.CartLine) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.Lines = lines
	}
}

// WithOrderStatus sets the order status
func WithOrderStatus(status domain.OrderStatus) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.Status = status
	}
}

// NewTestIdentity creates an admin identity for tests
func NewTestIdentity(perms ...string) *domain.Identity {
	if perms == nil {
		perms = []string{domain.PermOrders}
	}
	return &domain.Identity{
		ID:          nextID("principal"),
		Email:       fmt.Sprintf("admin%d@terrano-express.com", idCounter.Load()),
		Name:        "Test Admin",
		Role:        domain.RoleAdmin,
		Permissions: perms,
	}
}

// ResetIDCounter resets the ID counter (useful for deterministic tests)
func ResetIDCounter() {
	idCounter.Store(0)
}
