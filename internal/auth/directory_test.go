package auth

import (
	"context"
	"errors"
	"sort"
	"testing"

	"terrano-storefront/internal/domain"
)

func TestDirectory_AuthenticateAdmin(t *testing.T) {
	dir, err := NewFixtureDirectory()
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}

	identity, err := dir.Authenticate(context.Background(), "admin@terrano-express.com", "admin123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if identity.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", identity.Role, domain.RoleAdmin)
	}

	want := []string{
		domain.PermAnalytics,
		domain.PermCustomers,
		domain.PermOrders,
		domain.PermReservations,
		domain.PermSettings,
	}
	got := append([]string(nil), identity.Permissions...)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("permissions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("permissions = %v, want %v", got, want)
			break
		}
	}
}

func TestDirectory_AuthenticateManagerLacksAdminPerms(t *testing.T) {
	dir, err := NewFixtureDirectory()
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}

	identity, err := dir.Authenticate(context.Background(), "manager@terrano-express.com", "manager123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if identity.Role != domain.RoleManager {
		t.Errorf("role = %q, want %q", identity.Role, domain.RoleManager)
	}
	if identity.HasPermission(domain.PermSettings) || identity.HasPermission(domain.PermAnalytics) {
		t.Errorf("manager must not carry settings/analytics, got %v", identity.Permissions)
	}
	if !identity.HasPermission(domain.PermOrders) {
		t.Errorf("manager should carry orders, got %v", identity.Permissions)
	}
}

func TestDirectory_AuthenticateFailures(t *testing.T) {
	dir, err := NewFixtureDirectory()
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong_password", "admin@terrano-express.com", "wrong"},
		{"unknown_email", "nobody@terrano-express.com", "admin123"},
		{"empty_credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := dir.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
			if identity != nil {
				t.Errorf("expected nil identity, got %+v", identity)
			}
		})
	}
}

func TestDirectory_AuthenticateIsCaseInsensitiveOnEmail(t *testing.T) {
	dir, err := NewFixtureDirectory()
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}

	if _, err := dir.Authenticate(context.Background(), "Admin@Terrano-Express.com", "admin123"); err != nil {
		t.Errorf("expected case-insensitive email match, got %v", err)
	}
}
