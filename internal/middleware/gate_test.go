package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"terrano-storefront/internal/domain"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
}

func (s *stubVerifier) Verify(string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{
		ID:          "usr-admin",
		Email:       "admin@terrano-express.com",
		Name:        "Terrano Admin",
		Role:        domain.RoleAdmin,
		Permissions: []string{domain.PermOrders},
	}
}

func runGate(t *testing.T, verifier TokenVerifier, path string, withCookie bool) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var forwarded *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "some-token"})
	}
	rec := httptest.NewRecorder()

	Gate(verifier)(next).ServeHTTP(rec, req)
	return rec, forwarded
}

func TestGate_ProtectedWithoutCookieRedirectsToLogin(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{identity: adminIdentity()}, "/admin/dashboard", false)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("redirect = %q, want /admin/login", loc)
	}
	if forwarded != nil {
		t.Error("request must not be forwarded")
	}
}

func TestGate_ProtectedWithInvalidCookieRedirectsToLogin(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{err: domain.ErrInvalidToken}, "/admin/dashboard", true)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("redirect = %q, want /admin/login", loc)
	}
	if forwarded != nil {
		t.Error("request must not be forwarded")
	}
}

func TestGate_ProtectedWithValidCookieForwardsWithIdentity(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{identity: adminIdentity()}, "/admin/dashboard", true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if forwarded == nil {
		t.Fatal("request was not forwarded")
	}

	if forwarded.Header.Get(IdentityHeader) == "" {
		t.Error("identity header not attached")
	}
	identity, ok := GetIdentity(forwarded.Context())
	if !ok || identity.ID != "usr-admin" {
		t.Errorf("identity not in context: %+v", identity)
	}
}

func TestGate_LoginWithValidCookieRedirectsToLanding(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{identity: adminIdentity()}, "/admin/login", true)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("redirect = %q, want /admin", loc)
	}
	if forwarded != nil {
		t.Error("request must not be forwarded")
	}
}

func TestGate_LoginWithoutCookiePassesThrough(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{err: domain.ErrInvalidToken}, "/admin/login", false)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if forwarded == nil {
		t.Error("login request must be forwarded")
	}
}

func TestGate_LoginWithInvalidCookiePassesThrough(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{err: domain.ErrInvalidToken}, "/admin/login", true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if forwarded == nil {
		t.Error("login request must be forwarded")
	}
}

func TestGate_PublicPathPassesThroughUntouched(t *testing.T) {
	rec, forwarded := runGate(t, &stubVerifier{err: domain.ErrInvalidToken}, "/api/v1/menu", false)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if forwarded == nil {
		t.Fatal("public request must be forwarded")
	}
	if forwarded.Header.Get(IdentityHeader) != "" {
		t.Error("public request must not carry an identity header")
	}
}

func TestGate_AdminPrefixMatchingIsPathAware(t *testing.T) {
	// /administrator is not inside the protected namespace.
	rec, forwarded := runGate(t, &stubVerifier{err: domain.ErrInvalidToken}, "/administrator", false)

	if rec.Code != http.StatusOK || forwarded == nil {
		t.Errorf("/administrator should be public, got status %d", rec.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequirePermission(domain.PermSettings)(next)

	t.Run("missing_identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/settings", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("missing_permission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/api/settings", nil)
		req = req.WithContext(WithIdentity(req.Context(), adminIdentity()))
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("granted", func(t *testing.T) {
		identity := adminIdentity()
		identity.Permissions = append(identity.Permissions, domain.PermSettings)
		req := httptest.NewRequest(http.MethodGet, "/admin/api/settings", nil)
		req = req.WithContext(WithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}
