package auth

import (
	"context"
	"slices"
)

// Role names carried by a Principal.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the resolved identity of the caller for a single request.
// The zero value is the anonymous actor.
type Principal struct {
	ID          uint
	Email       string
	DisplayName string
	Roles       []string
}

// Anonymous is the principal of a caller without a usable credential.
var Anonymous = Principal{}

// IsAnonymous reports whether p carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.ID == 0
}

// IsAuthenticated is the negation of IsAnonymous.
func (p Principal) IsAuthenticated() bool {
	return p.ID != 0
}

// HasRole reports whether p was granted role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored in ctx, or Anonymous.
func PrincipalFromContext(ctx context.Context) Principal {
	if ctx == nil {
		return Anonymous
	}
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}
