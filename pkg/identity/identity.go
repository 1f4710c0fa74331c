// Package identity verifies bearer tokens issued by the external identity
// provider and carries the resolved caller through the request context.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the verified attributes of a bearer token.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks a raw bearer token against the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    string
	SubjectID string
	Email     string
	Role      string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "admin" }

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
