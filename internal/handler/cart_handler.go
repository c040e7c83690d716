package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"terrano-storefront/internal/cart"
	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartCookieName identifies the shopper's cart across requests.
const CartCookieName = "cart-id"

const cartCookieMaxAge = 7 * 24 * 3600

// CartHandler handles the shopper-facing cart endpoints. The cart is
// addressed by an opaque cookie; first contact mints a fresh cart ID.
type CartHandler struct {
	registry      *cart.Registry
	menu          domain.MenuRepository
	secureCookies bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(registry *cart.Registry, menu domain.MenuRepository, secureCookies bool) *CartHandler {
	return &CartHandler{
		registry:      registry,
		menu:          menu,
		secureCookies: secureCookies,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ItemID string `json:"item_id"`
}

// UpdateQuantityRequest represents a quantity update request
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// resolveCart finds the shopper's store, minting a cart ID cookie on
// first contact.
func (h *CartHandler) resolveCart(w http.ResponseWriter, r *http.Request) (string, *cart.Store) {
	cookie, err := r.Cookie(CartCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, h.registry.Get(cookie.Value)
	}

	cartID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   cartCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return cartID, h.registry.Get(cartID)
}

func writeCartState(w http.ResponseWriter, state domain.CartState) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// Get returns the current cart state
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, store := h.resolveCart(w, r)
	writeCartState(w, store.State())
}

// AddItem adds a menu item to the cart, bumping quantity on repeats
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, `{"error":"Item ID required"}`, http.StatusBadRequest)
		return
	}

	item, err := h.menu.GetByID(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			http.Error(w, `{"error":"Menu item not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"Failed to resolve menu item"}`, http.StatusInternalServerError)
		return
	}

	_, store := h.resolveCart(w, r)
	state := store.AddItem(domain.CartLine{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Image:       item.Image,
		Description: item.Description,
	})
	observability.CartActionsTotal.WithLabelValues(string(cart.AddItem)).Inc()
	writeCartState(w, state)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		http.Error(w, `{"error":"Item ID required"}`, http.StatusBadRequest)
		return
	}

	_, store := h.resolveCart(w, r)
	state := store.RemoveItem(itemID)
	observability.CartActionsTotal.WithLabelValues(string(cart.RemoveItem)).Inc()
	writeCartState(w, state)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		http.Error(w, `{"error":"Item ID required"}`, http.StatusBadRequest)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	_, store := h.resolveCart(w, r)
	state := store.UpdateQuantity(itemID, req.Quantity)
	observability.CartActionsTotal.WithLabelValues(string(cart.UpdateQuantity)).Inc()
	writeCartState(w, state)
}

// IncreaseQuantity bumps a line's quantity by one
func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		http.Error(w, `{"error":"Item ID required"}`, http.StatusBadRequest)
		return
	}

	_, store := h.resolveCart(w, r)
	state := store.IncreaseQuantity(itemID)
	observability.CartActionsTotal.WithLabelValues(string(cart.IncreaseQuantity)).Inc()
	writeCartState(w, state)
}

// DecreaseQuantity drops a line's quantity by one, removing it at one
func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		http.Error(w, `{"error":"Item ID required"}`, http.StatusBadRequest)
		return
	}

	_, store := h.resolveCart(w, r)
	state := store.DecreaseQuantity(itemID)
	observability.CartActionsTotal.WithLabelValues(string(cart.DecreaseQuantity)).Inc()
	writeCartState(w, state)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	_, store := h.resolveCart(w, r)
	state := store.Clear()
	observability.CartActionsTotal.WithLabelValues(string(cart.ClearCart)).Inc()
	writeCartState(w, state)
}

// Open shows the cart side panel
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	_, store := h.resolveCart(w, r)
	state := store.Open()
	observability.CartActionsTotal.WithLabelValues(string(cart.OpenCart)).Inc()
	writeCartState(w, state)
}

// Close hides the cart side panel
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	_, store := h.resolveCart(w, r)
	state := store.Close()
	observability.CartActionsTotal.WithLabelValues(string(cart.CloseCart)).Inc()
	writeCartState(w, state)
}
