// Package service holds the application rules between the HTTP layer and
// the repositories.
package service

import (
	"context"
	"errors"

	"gallery/internal/models"
	"gallery/internal/repository"
)

// storeError maps repository outcomes onto API errors. notFound replaces
// repository.ErrNotFound so callers can pick a more specific reason.
func storeError(err, notFound error) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return models.ErrConflict
	case errors.As(err, &appErr):
		return err
	default:
		return models.NewInternalError(err)
	}
}

// findPhoto returns (nil, nil) when the photo does not exist so that the
// policy functions report the missing photo themselves.
func findPhoto(ctx context.Context, photos repository.PhotoRepository, id uint) (*models.Photo, error) {
	photo, err := photos.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return photo, nil
}
