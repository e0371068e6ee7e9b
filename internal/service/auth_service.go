package service

import (
	"context"
	"errors"
	"strings"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/repository"
	"gallery/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = models.NewUnauthorizedError("Invalid email or password")

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenIssuer
	hashCost int
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, in validation.Registration) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := in.Validate(); err != nil {
		return nil, validation.AsAppError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Password:    string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.ReasonEmailTaken, "Email is already registered")
		}
		return nil, storeError(err, models.ErrNotFound)
	}

	return s.issue(user)
}

// Login checks the password against the stored bcrypt hash. Unknown emails
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in validation.Credentials) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.Validate(); err != nil {
		return nil, validation.AsAppError(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, errInvalidCredentials
	}

	return s.issue(user)
}

// Refresh re-issues a token. Expired tokens are accepted; forged ones are not.
func (s *AuthService) Refresh(_ context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", models.NewValidationError("token is required")
	}
	fresh, err := s.tokens.Refresh(token)
	if err != nil {
		if errors.Is(err, models.ErrInvalidToken) {
			return "", err
		}
		return "", models.NewInternalError(err)
	}
	return fresh, nil
}

// ValidateToken reports whether token is currently valid for email.
func (s *AuthService) ValidateToken(token, email string) bool {
	return s.tokens.Validate(token, strings.ToLower(strings.TrimSpace(email)))
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.DisplayName)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.Password = ""
	return &AuthResult{Token: token, User: user}, nil
}
