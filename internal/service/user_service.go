package service

import (
	"context"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Me returns the authenticated caller's account.
func (s *UserService) Me(ctx context.Context, actor auth.Principal) (*models.User, error) {
	if actor.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, models.NewNotFoundError("User", actor.ID))
	}
	return user, nil
}

// DeleteAccount removes the caller with all their photos, likes and favorites.
// Tokens issued to the account stop resolving once the row is gone.
func (s *UserService) DeleteAccount(ctx context.Context, actor auth.Principal) error {
	if actor.IsAnonymous() {
		return models.ErrUnauthenticated
	}
	return storeError(s.users.Delete(ctx, actor.ID), models.NewNotFoundError("User", actor.ID))
}
