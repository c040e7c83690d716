// Package token issues and verifies the signed session tokens that back
// the admin area. Tokens are self-contained: the verified claims are the
// only session state the server ever holds.
package token

import (
	"fmt"
	"time"

	"terrano-storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the lifetime of an issued session token.
const TTL = 24 * time.Hour

// NowFunc returns the current time. It can be overridden in tests.
var NowFunc = time.Now

// Service signs and verifies session tokens with a symmetric secret.
type Service struct {
	secret   []byte
	issuer   string
	audience string
}

// NewService creates a token service bound to a secret and the fixed
// issuer/audience pair every token must carry.
func NewService(secret, issuer, audience string) *Service {
	return &Service{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Issue encodes the identity as signed claims, valid for TTL from now.
// It has no side effects; persisting the token (e.g. as a cookie) is the
// caller's concern.
func (s *Service) Issue(identity *domain.Identity) (string, error) {
	now := NowFunc()

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"aud":   s.audience,
		"sub":   identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
		"role":  string(identity.Role),
		"perms": identity.Permissions,
		"iat":   now.Unix(),
		"exp":   now.Add(TTL).Unix(),
		"jti":   uuid.New().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and expiry, and reconstructs
// the Identity from the claims. Every failure mode collapses to
// domain.ErrInvalidToken; callers treat it as "unauthenticated", never as
// a fatal error.
func (s *Service) Verify(tokenString string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	identity := &domain.Identity{
		ID:    stringClaim(claims, "sub"),
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
		Role:  domain.Role(stringClaim(claims, "role")),
	}
	if identity.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	if raw, ok := claims["perms"].([]any); ok {
		perms := make([]string, 0, len(raw))
		for _, p := range raw {
			if s, ok := p.(string); ok {
				perms = append(perms, s)
			}
		}
		identity.Permissions = perms
	}

	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
