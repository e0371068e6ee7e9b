// Package auth issues and verifies identity tokens and resolves the request principal.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gallery/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function into a Clock.
type ClockFunc func() time.Time

// Now satisfies the Clock interface.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Claims is the claim set carried by an identity token. The registered exp
// claim holds whole seconds; ExpiresAtNano carries the exact expiry.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	DisplayName   string `json:"name"`
	ExpiresAtNano int64  `json:"exp_ns,omitempty"`
}

// SubjectID returns the numeric user id stored in the subject claim.
func (c *Claims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return uint(id), nil
}

// ExpiresAtTime returns the expiry instant, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAtNano > 0 {
		return time.Unix(0, c.ExpiresAtNano)
	}
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenIssuer creates and verifies signed, time-bounded identity tokens.
// It keeps no state besides its configuration and is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

// NewTokenIssuer returns an issuer signing with secret. A non-positive ttl
// falls back to DefaultTTL and a nil clock to SystemClock.
func NewTokenIssuer(secret string, ttl time.Duration, clock Clock) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

// TTL returns the configured token lifetime.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue signs a new token for the given subject.
func (ti *TokenIssuer) Issue(subjectID uint, email, displayName string) (string, error) {
	if len(ti.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}
	if subjectID == 0 {
		return "", errors.New("subject id is required")
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ti.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Email:         email,
		DisplayName:   displayName,
		ExpiresAtNano: expiresAt.UnixNano(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractClaims verifies the signature and decodes the claim set.
// Expiry is not checked here.
func (ti *TokenIssuer) ExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" || len(ti.secret) == 0 {
		return nil, models.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, &models.AppError{
			Code:    models.CodeInvalidToken,
			Message: models.ErrInvalidToken.Message,
			Err:     err,
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, models.ErrInvalidToken
	}
	if _, err := claims.SubjectID(); err != nil {
		return nil, &models.AppError{Code: models.CodeInvalidToken, Message: models.ErrInvalidToken.Message, Err: err}
	}
	if claims.ExpiresAt == nil || claims.Email == "" {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}

// CheckExpiry returns ErrTokenExpired once the claims' expiry has been reached.
func (ti *TokenIssuer) CheckExpiry(claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return models.ErrInvalidToken
	}
	if !ti.clock.Now().Before(claims.ExpiresAtTime()) {
		return models.ErrTokenExpired
	}
	return nil
}

// Parse extracts the claims and rejects expired tokens with ErrTokenExpired.
func (ti *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims, err := ti.ExtractClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if err := ti.CheckExpiry(claims); err != nil {
		return claims, err
	}
	return claims, nil
}

// Validate reports whether the token is authentic, well formed, unexpired and
// issued for expectedEmail. It never fails with an error.
func (ti *TokenIssuer) Validate(tokenString, expectedEmail string) bool {
	claims, err := ti.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Email == expectedEmail
}

// Refresh re-issues a token with the same identity and a fresh TTL window.
// The old token must be authentic but may already be expired.
func (ti *TokenIssuer) Refresh(oldToken string) (string, error) {
	claims, err := ti.ExtractClaims(oldToken)
	if err != nil {
		return "", err
	}
	subjectID, err := claims.SubjectID()
	if err != nil {
		return "", models.ErrInvalidToken
	}
	return ti.Issue(subjectID, claims.Email, claims.DisplayName)
}
