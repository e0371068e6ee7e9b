package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gallery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredentialStore struct {
	users map[uint]*models.User
	err   error
	calls int
}

func (s *stubCredentialStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func TestResolve_WithStore(t *testing.T) {
	issuer, clock := newTestIssuer(time.Hour)
	store := &stubCredentialStore{users: map[uint]*models.User{
		1: {ID: 1, Email: "alice@example.com", DisplayName: "Alice"},
		2: {ID: 2, Email: "root@example.com", DisplayName: "Root", IsAdmin: true},
		3: {ID: 3, Email: "new-address@example.com", DisplayName: "Moved"},
	}}
	resolver := NewResolver(issuer, store)
	ctx := context.Background()

	alice, err := issuer.Issue(1, "alice@example.com", "Alice")
	require.NoError(t, err)
	root, err := issuer.Issue(2, "root@example.com", "Root")
	require.NoError(t, err)
	moved, err := issuer.Issue(3, "old-address@example.com", "Moved")
	require.NoError(t, err)
	deleted, err := issuer.Issue(9, "gone@example.com", "Gone")
	require.NoError(t, err)

	t.Run("known user", func(t *testing.T) {
		p := resolver.Resolve(ctx, alice)
		assert.True(t, p.IsAuthenticated())
		assert.Equal(t, uint(1), p.ID)
		assert.Equal(t, "alice@example.com", p.Email)
		assert.Equal(t, []string{RoleUser}, p.Roles)
		assert.False(t, p.HasRole(RoleAdmin))
	})

	t.Run("admin role from store", func(t *testing.T) {
		p := resolver.Resolve(ctx, root)
		assert.True(t, p.HasRole(RoleAdmin))
		assert.True(t, p.HasRole(RoleUser))
	})

	t.Run("email changed since issuance", func(t *testing.T) {
		assert.True(t, resolver.Resolve(ctx, moved).IsAnonymous())
	})

	t.Run("user deleted since issuance", func(t *testing.T) {
		assert.Equal(t, Anonymous, resolver.Resolve(ctx, deleted))
	})

	t.Run("malformed token skips the store", func(t *testing.T) {
		before := store.calls
		assert.True(t, resolver.Resolve(ctx, "junk").IsAnonymous())
		assert.Equal(t, before, store.calls)
	})

	t.Run("expired token", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		defer clock.Advance(-2 * time.Hour)
		assert.True(t, resolver.Resolve(ctx, alice).IsAnonymous())
	})
}

func TestResolve_StoreFailure(t *testing.T) {
	issuer, _ := newTestIssuer(time.Hour)
	resolver := NewResolver(issuer, &stubCredentialStore{err: errors.New("connection refused")})

	token, err := issuer.Issue(1, "alice@example.com", "Alice")
	require.NoError(t, err)

	assert.True(t, resolver.Resolve(context.Background(), token).IsAnonymous())
}

func TestResolve_ClaimsOnly(t *testing.T) {
	issuer, _ := newTestIssuer(time.Hour)
	resolver := NewResolver(issuer, nil)

	token, err := issuer.Issue(4, "dave@example.com", "Dave")
	require.NoError(t, err)

	p := resolver.Resolve(context.Background(), token)
	assert.Equal(t, Principal{ID: 4, Email: "dave@example.com", DisplayName: "Dave", Roles: []string{RoleUser}}, p)
	assert.True(t, resolver.Resolve(context.Background(), "").IsAnonymous())
}

func TestResolve_NilResolver(t *testing.T) {
	var resolver *Resolver
	assert.True(t, resolver.Resolve(context.Background(), "anything").IsAnonymous())
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, PrincipalFromContext(ctx).IsAnonymous())

	p := Principal{ID: 3, Email: "c@example.com", Roles: []string{RoleUser}}
	ctx = WithPrincipal(ctx, p)
	assert.Equal(t, p, PrincipalFromContext(ctx))
}

func TestPrincipalFor(t *testing.T) {
	assert.True(t, PrincipalFor(nil).IsAnonymous())
	assert.True(t, PrincipalFor(&models.User{}).IsAnonymous())

	p := PrincipalFor(&models.User{ID: 5, Email: "e@example.com", DisplayName: "E", IsAdmin: true})
	assert.Equal(t, uint(5), p.ID)
	assert.Equal(t, []string{RoleUser, RoleAdmin}, p.Roles)
}
