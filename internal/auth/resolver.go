package auth

import (
	"context"
	"log/slog"

	"gallery/internal/models"
)

// CredentialStore is the subset of the user store the resolver needs.
type CredentialStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Resolver turns a raw token into a Principal.
type Resolver struct {
	tokens *TokenIssuer
	store  CredentialStore
}

// NewResolver builds a resolver. store may be nil, in which case principals
// are built from the token claims alone.
func NewResolver(tokens *TokenIssuer, store CredentialStore) *Resolver {
	return &Resolver{tokens: tokens, store: store}
}

// Resolve returns the principal for token, or Anonymous when the token is
// unusable or the user it names no longer exists.
func (r *Resolver) Resolve(ctx context.Context, token string) Principal {
	if r == nil || r.tokens == nil || token == "" {
		return Anonymous
	}

	claims, err := r.tokens.Parse(token)
	if err != nil {
		slog.DebugContext(ctx, "credential rejected", "code", models.CodeOf(err))
		return Anonymous
	}
	subjectID, err := claims.SubjectID()
	if err != nil {
		return Anonymous
	}

	if r.store == nil {
		return Principal{
			ID:          subjectID,
			Email:       claims.Email,
			DisplayName: claims.DisplayName,
			Roles:       []string{RoleUser},
		}
	}

	user, err := r.store.GetByID(ctx, subjectID)
	if err != nil || user == nil {
		slog.DebugContext(ctx, "credential subject not found", "user_id", subjectID)
		return Anonymous
	}
	// an email change invalidates tokens issued for the old address
	if !r.tokens.Validate(token, user.Email) {
		return Anonymous
	}

	return PrincipalFor(user)
}

// PrincipalFor builds the principal of a stored user.
func PrincipalFor(user *models.User) Principal {
	if user == nil || user.ID == 0 {
		return Anonymous
	}
	roles := []string{RoleUser}
	if user.IsAdmin {
		roles = append(roles, RoleAdmin)
	}
	return Principal{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
	}
}
