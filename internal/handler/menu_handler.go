package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"terrano-storefront/internal/domain"

	"github.com/go-chi/chi/v5"
)

// MenuHandler handles menu catalog endpoints
type MenuHandler struct {
	menu domain.MenuRepository
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu domain.MenuRepository) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// List retrieves the full menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"Failed to retrieve menu"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": items,
	})
}

// Get retrieves a single menu item
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, `{"error":"Menu item ID required"}`, http.StatusBadRequest)
		return
	}

	item, err := h.menu.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			http.Error(w, `{"error":"Menu item not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"Failed to retrieve menu item"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}
