package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/menu"
	"terrano-storefront/internal/testutil"

	"github.com/go-chi/chi/v5"
)

func newMenuRouter(t *testing.T) *chi.Mux {
	t.Helper()

	h := NewMenuHandler(menu.NewFixtureRepository())

	r := chi.NewRouter()
	r.Get("/api/v1/menu", h.List)
	r.Get("/api/v1/menu/{id}", h.Get)
	return r
}

func TestMenuHandler_ListReturnsCatalog(t *testing.T) {
	r := newMenuRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := testutil.AssertJSONResponse(t, w, http.StatusOK)
	items, ok := resp["items"].([]interface{})
	testutil.AssertTrue(t, ok, "response must carry an items array")
	testutil.AssertTrue(t, len(items) > 0, "fixture catalog must not be empty")
}

func TestMenuHandler_GetReturnsItem(t *testing.T) {
	r := newMenuRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/margherita", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	item := testutil.DecodeJSON[domain.MenuItem](t, w)
	testutil.AssertEqual(t, item.ID, "margherita")
	testutil.AssertTrue(t, item.Price > 0, "fixture items carry a price")
}

func TestMenuHandler_GetUnknownItemIs404(t *testing.T) {
	r := newMenuRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/unobtainium", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	testutil.AssertJSONError(t, w, http.StatusNotFound, "Menu item not found")
}
