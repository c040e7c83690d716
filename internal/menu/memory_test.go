package menu

import (
	"context"
	"errors"
	"testing"

	"terrano-storefront/internal/domain"
)

func TestMemoryRepository_ListPreservesOrder(t *testing.T) {
	repo := NewMemoryRepository([]*domain.MenuItem{
		{ID: "b", Name: "B", Price: 2},
		{ID: "a", Name: "A", Price: 1},
		{ID: "c", Name: "C", Price: 3},
	})

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"b", "a", "c"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("item %d = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestMemoryRepository_GetByID(t *testing.T) {
	repo := NewFixtureRepository()

	item, err := repo.GetByID(context.Background(), "margherita")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if item.Price <= 0 {
		t.Errorf("fixture price = %v, want positive", item.Price)
	}

	// Mutating the returned item must not leak into the repository.
	item.Price = 999
	again, _ := repo.GetByID(context.Background(), "margherita")
	if again.Price == 999 {
		t.Error("repository returned a shared pointer")
	}
}

func TestMemoryRepository_GetByID_NotFound(t *testing.T) {
	repo := NewFixtureRepository()

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}
