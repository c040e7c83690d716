package token

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"terrano-storefront/internal/domain"
)

const testSecret = "test-secret-at-least-32-characters!!"

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:    "usr-1",
		Email: "admin@terrano-express.com",
		Name:  "Admin User",
		Role:  domain.RoleAdmin,
		Permissions: []string{
			domain.PermOrders,
			domain.PermReservations,
			domain.PermCustomers,
			domain.PermSettings,
			domain.PermAnalytics,
		},
	}
}

func TestService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret, "terrano-express", "terrano-admin")

	tokenString, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if tokenString == "" {
		t.Fatal("issued token is empty")
	}

	got, err := svc.Verify(tokenString)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	want := testIdentity()
	if got.ID != want.ID || got.Email != want.Email || got.Name != want.Name || got.Role != want.Role {
		t.Errorf("identity mismatch: got %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(got.Permissions, want.Permissions) {
		t.Errorf("permissions mismatch: got %v, want %v", got.Permissions, want.Permissions)
	}
}

func TestService_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testSecret, "terrano-express", "terrano-admin")
	verifier := NewService("another-secret-also-32-characters!!!", "terrano-express", "terrano-admin")

	tokenString, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(tokenString); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyRejectsWrongIssuerOrAudience(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{"wrong_issuer", "someone-else", "terrano-admin"},
		{"wrong_audience", "terrano-express", "someone-else"},
	}

	verifier := NewService(testSecret, "terrano-express", "terrano-admin")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Same secret, so the signature itself is valid.
			other := NewService(testSecret, tt.issuer, tt.audience)
			tokenString, err := other.Issue(testIdentity())
			if err != nil {
				t.Fatalf("issue failed: %v", err)
			}

			if _, err := verifier.Verify(tokenString); !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestService_VerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService(testSecret, "terrano-express", "terrano-admin")

	NowFunc = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	defer func() { NowFunc = time.Now }()

	tokenString, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	NowFunc = time.Now
	if _, err := svc.Verify(tokenString); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestService_VerifyRejectsGarbage(t *testing.T) {
	svc := NewService(testSecret, "terrano-express", "terrano-admin")

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(bad); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", bad, err)
		}
	}
}
