package domain

import (
	"context"
	"errors"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItem is a product on the storefront menu.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
}

// MenuRepository defines the interface for menu catalog access.
type MenuRepository interface {
	List(ctx context.Context) ([]*MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
}
