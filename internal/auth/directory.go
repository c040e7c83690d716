// Package auth resolves back-office credentials to identities. The only
// implementation here is an in-memory fixture directory; it exists so the
// rest of the system is written against domain.PrincipalDirectory and a
// real credential store can be dropped in without touching handlers.
package auth

import (
	"context"
	"fmt"
	"strings"

	"terrano-storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type principal struct {
	identity     domain.Identity
	passwordHash []byte
}

// Directory is a fixed, in-memory principal set keyed by email.
type Directory struct {
	principals map[string]principal
}

type seed struct {
	identity domain.Identity
	password string
}

// NewFixtureDirectory builds the registered test principals: an admin and
// a manager with different permission sets. Passwords are stored only as
// bcrypt hashes, even for fixtures.
func NewFixtureDirectory() (*Directory, error) {
	seeds := []seed{
		{
			identity: domain.Identity{
				ID:    "usr-admin",
				Email: "admin@terrano-express.com",
				Name:  "Terrano Admin",
				Role:  domain.RoleAdmin,
				Permissions: []string{
					domain.PermOrders,
					domain.PermReservations,
					domain.PermCustomers,
					domain.PermSettings,
					domain.PermAnalytics,
				},
			},
			password: "admin123",
		},
		{
			identity: domain.Identity{
				ID:    "usr-manager",
				Email: "manager@terrano-express.com",
				Name:  "Terrano Manager",
				Role:  domain.RoleManager,
				Permissions: []string{
					domain.PermOrders,
					domain.PermReservations,
					domain.PermCustomers,
				},
			},
			password: "manager123",
		},
	}

	d := &Directory{principals: make(map[string]principal, len(seeds))}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to seed principal %s: %w", s.identity.Email, err)
		}
		d.principals[strings.ToLower(s.identity.Email)] = principal{
			identity:     s.identity,
			passwordHash: hash,
		}
	}
	return d, nil
}

// Authenticate looks the email up and compares the password hash. Unknown
// emails and wrong passwords collapse to the same ErrInvalidCredentials
// so callers cannot distinguish them.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	p, ok := d.principals[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity := p.identity
	identity.Permissions = append([]string(nil), p.identity.Permissions...)
	return &identity, nil
}
