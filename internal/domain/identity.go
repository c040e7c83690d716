package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Role is the back-office role of an authenticated principal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Permission strings granted to back-office roles.
const (
	PermOrders       = "orders"
	PermReservations = "reservations"
	PermCustomers    = "customers"
	PermSettings     = "settings"
	PermAnalytics    = "analytics"
)

// Identity is the resolved representation of an authenticated principal.
// It is reconstructed from verified token claims on every request; the
// signed token is the only place it persists.
type Identity struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the identity carries the given permission.
func (i *Identity) HasPermission(perm string) bool {
	for _, p := range i.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// PrincipalDirectory resolves credentials to an Identity. The in-memory
// fixture directory implements this; a production deployment swaps in a
// real credential store behind the same interface.
type PrincipalDirectory interface {
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
}
