// Package auth carries the caller identity of an HTTP request: HS256 bearer
// tokens with "sub" and "role" claims, parsed into a Principal stored in the
// request context.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
	ErrEmptySecret   = errors.New("jwt secret is empty")
)

// Principal represents the authenticated caller from JWT.
type Principal struct {
	Subject string // user id
	Role    string // "delivery" | "customer" | "admin"
}

type principalKey struct{}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// ParseBearer validates an Authorization header value of the form "Bearer <jwt>".
func ParseBearer(header, secret string) (*Principal, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, ErrMissingToken
	}
	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// ParseToken validates an HS256 token and extracts its principal.
// Expiry is enforced when the token carries "exp".
func ParseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	c, _ := tok.Claims.(*claims)
	if c == nil || c.Subject == "" || c.Role == "" {
		return nil, ErrInvalidClaims
	}
	return &Principal{Subject: c.Subject, Role: strings.ToLower(c.Role)}, nil
}

// IssueToken signs a token for subject with role. A zero ttl issues a token without expiry.
func IssueToken(secret, subject, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	now := time.Now()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
