package orders

import (
	"context"
	"errors"
	"testing"

	"terrano-storefront/internal/domain"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	order := &domain.Order{
		ID:     "order-1",
		Status: domain.OrderReceived,
		Lines:  []domain.CartLine{{ID: "item-1", Price: 10, Quantity: 1}},
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "order-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != "order-1" || got.Status != domain.OrderReceived {
		t.Errorf("unexpected order: %+v", got)
	}

	// Returned orders are copies: mutating one must not leak back.
	got.Lines[0].Quantity = 99
	again, _ := repo.GetByID(ctx, "order-1")
	if again.Lines[0].Quantity != 1 {
		t.Error("repository leaked internal state through a returned order")
	}
}

func TestMemoryRepository_GetUnknown(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, &domain.Order{ID: id}); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"c", "b", "a"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestMemoryRepository_UpdateStatus(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Order{ID: "order-1", Status: domain.OrderReceived}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, "order-1", domain.OrderPreparing)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.OrderPreparing {
		t.Errorf("status = %s, want preparing", updated.Status)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set on transition")
	}

	if _, err := repo.UpdateStatus(ctx, "order-1", "vaporized"); !errors.Is(err, domain.ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "ghost", domain.OrderPreparing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
