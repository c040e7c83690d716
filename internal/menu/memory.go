// Package menu provides the storefront menu catalog. The snapshot ships
// with an in-memory repository seeded from fixtures; persistence is
// deliberately out of scope.
package menu

import (
	"context"
	"sync"

	"terrano-storefront/internal/domain"
)

// MemoryRepository is an in-memory menu catalog.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.MenuItem
	order []string
}

// NewMemoryRepository creates a repository holding the given items,
// preserving their order for listing.
func NewMemoryRepository(items []*domain.MenuItem) *MemoryRepository {
	repo := &MemoryRepository{
		items: make(map[string]*domain.MenuItem, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

// NewFixtureRepository creates the repository seeded with the storefront
// menu.
func NewFixtureRepository() *MemoryRepository {
	return NewMemoryRepository(fixtureItems())
}

// List returns all menu items in catalog order.
func (r *MemoryRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*domain.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.items[id]
		items = append(items, &copied)
	}
	return items, nil
}

// GetByID returns a single menu item.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	copied := *item
	return &copied, nil
}

func fixtureItems() []*domain.MenuItem {
	return []*domain.MenuItem{
		{
			ID:          "margherita",
			Name:        "Pizza Margherita",
			Description: "San Marzano tomatoes, fior di latte, fresh basil",
			Price:       12.5,
			Image:       "/images/menu/margherita.jpg",
			Category:    "pizza",
		},
		{
			ID:          "diavola",
			Name:        "Pizza Diavola",
			Description: "Spicy salami, chili oil, mozzarella",
			Price:       14,
			Image:       "/images/menu/diavola.jpg",
			Category:    "pizza",
		},
		{
			ID:          "carbonara",
			Name:        "Spaghetti Carbonara",
			Description: "Guanciale, pecorino romano, egg yolk",
			Price:       13,
			Image:       "/images/menu/carbonara.jpg",
			Category:    "pasta",
		},
		{
			ID:          "lasagna",
			Name:        "Lasagna al Forno",
			Description: "Slow-cooked ragù, béchamel, parmigiano",
			Price:       15,
			Image:       "/images/menu/lasagna.jpg",
			Category:    "pasta",
		},
		{
			ID:          "caprese",
			Name:        "Insalata Caprese",
			Description: "Buffalo mozzarella, heirloom tomatoes, basil",
			Price:       9.5,
			Image:       "/images/menu/caprese.jpg",
			Category:    "starters",
		},
		{
			ID:          "bruschetta",
			Name:        "Bruschetta Classica",
			Description: "Grilled bread, tomatoes, garlic, olive oil",
			Price:       7,
			Image:       "/images/menu/bruschetta.jpg",
			Category:    "starters",
		},
		{
			ID:          "tiramisu",
			Name:        "Tiramisù",
			Description: "Espresso-soaked savoiardi, mascarpone cream",
			Price:       8,
			Image:       "/images/menu/tiramisu.jpg",
			Category:    "desserts",
		},
		{
			ID:          "panna-cotta",
			Name:        "Panna Cotta",
			Description: "Vanilla cream, berry coulis",
			Price:       7.5,
			Image:       "/images/menu/panna-cotta.jpg",
			Category:    "desserts",
		},
	}
}
