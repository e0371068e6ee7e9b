// Package middleware provides the request pipeline: authentication, logging,
// metrics, tracing and rate limiting.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"gallery/internal/auth"
	"gallery/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PrincipalLocalsKey is the fiber locals key holding the resolved auth.Principal.
const PrincipalLocalsKey = "principal"

// DefaultExemptPaths never read credentials.
var DefaultExemptPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh",
	"/api/auth/validate",
	"/health",
	"/health/live",
	"/health/ready",
}

// PrincipalResolver maps a raw token to a principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) auth.Principal
}

// AuthConfig configures Authenticate.
type AuthConfig struct {
	Resolver PrincipalResolver
	// Header carries the credential. Defaults to Authorization.
	Header string
	// Scheme prefixes the token inside Header. Defaults to Bearer.
	Scheme string
	// ExemptPaths skip credential extraction. Defaults to DefaultExemptPaths.
	ExemptPaths []string
}

// Authenticate resolves the caller once per request and stores the principal
// in the fiber locals and the user context. It never rejects a request: a
// missing or unusable credential yields auth.Anonymous, and the handlers
// decide whether anonymous access is acceptable.
func Authenticate(cfg AuthConfig) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = fiber.HeaderAuthorization
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "Bearer"
	}
	paths := cfg.ExemptPaths
	if paths == nil {
		paths = DefaultExemptPaths
	}
	exempt := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		exempt[normalizePath(p)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal := auth.Anonymous
		outcome := "exempt"

		if _, ok := exempt[normalizePath(c.Path())]; !ok {
			principal, outcome = resolveSafely(c, cfg.Resolver, header, scheme)
		}
		AuthOutcomes.WithLabelValues(outcome).Inc()

		SetPrincipal(c, principal)
		return c.Next()
	}
}

// resolveSafely extracts and resolves the credential, recovering from panics.
func resolveSafely(c *fiber.Ctx, resolver PrincipalResolver, header, scheme string) (p auth.Principal, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			Logger.ErrorContext(c.UserContext(), "panic while resolving credential",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			p, outcome = auth.Anonymous, "panic"
		}
	}()

	token, ok := ExtractToken(c.Get(header), scheme)
	if !ok {
		return auth.Anonymous, "missing"
	}
	if resolver == nil {
		return auth.Anonymous, "rejected"
	}
	p = resolver.Resolve(c.UserContext(), token)
	if p.IsAnonymous() {
		return auth.Anonymous, "rejected"
	}
	return p, "authenticated"
}

// ExtractToken returns the token following scheme in a header value.
// The scheme match is case-insensitive. An empty scheme takes the whole value.
func ExtractToken(value, scheme string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if scheme == "" {
		return value, true
	}
	if len(value) <= len(scheme)+1 || !strings.EqualFold(value[:len(scheme)], scheme) || value[len(scheme)] != ' ' {
		return "", false
	}
	token := strings.TrimSpace(value[len(scheme)+1:])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// SetPrincipal attaches p to the request. Authenticated principals also
// populate the userID local and the logger's user id.
func SetPrincipal(c *fiber.Ctx, p auth.Principal) {
	c.Locals(PrincipalLocalsKey, p)
	ctx := auth.WithPrincipal(c.UserContext(), p)
	if p.IsAuthenticated() {
		c.Locals("userID", p.ID)
		ctx = context.WithValue(ctx, UserIDKey, p.ID)
	}
	c.SetUserContext(ctx)
}

// PrincipalFrom returns the principal attached by Authenticate, or auth.Anonymous.
func PrincipalFrom(c *fiber.Ctx) auth.Principal {
	if p, ok := c.Locals(PrincipalLocalsKey).(auth.Principal); ok {
		return p
	}
	return auth.Anonymous
}

// RequireAuthenticated rejects anonymous callers with 401 UNAUTHORIZED.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFrom(c).IsAnonymous() {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.ErrUnauthenticated)
		}
		return c.Next()
	}
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
