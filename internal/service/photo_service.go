package service

import (
	"context"
	"strings"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/policy"
	"gallery/internal/repository"
	"gallery/internal/validation"
)

// PhotoService manages the photo lifecycle under the visibility and
// ownership policy.
type PhotoService struct {
	photos       repository.PhotoRepository
	interactions repository.InteractionRepository
}

type CreatePhotoInput struct {
	validation.PhotoDetails
	Visibility models.Visibility `json:"visibility"`
}

func NewPhotoService(photos repository.PhotoRepository, interactions repository.InteractionRepository) *PhotoService {
	return &PhotoService{photos: photos, interactions: interactions}
}

// Create stores a new photo owned by actor. Visibility defaults to private.
func (s *PhotoService) Create(ctx context.Context, actor auth.Principal, in CreatePhotoInput) (*models.Photo, error) {
	if actor.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPrivate
	}
	if err := in.PhotoDetails.Validate(); err != nil {
		return nil, validation.AsAppError(err)
	}
	if err := validation.ValidateVisibility(in.Visibility); err != nil {
		return nil, validation.AsAppError(err)
	}

	photo := &models.Photo{
		OwnerID:     actor.ID,
		Visibility:  in.Visibility,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, storeError(err, models.ErrUnauthenticated)
	}
	return photo, nil
}

// Get returns the photo with its like count if actor may view it.
func (s *PhotoService) Get(ctx context.Context, actor auth.Principal, id uint) (*models.Photo, error) {
	photo, err := findPhoto(ctx, s.photos, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeView(photo, actor); err != nil {
		return nil, err
	}

	count, err := s.interactions.CountLikes(ctx, id)
	if err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	photo.LikesCount = count
	return photo, nil
}

// Update replaces the title, description and image URL. Only the owner may.
func (s *PhotoService) Update(ctx context.Context, actor auth.Principal, id uint, in validation.PhotoDetails) (*models.Photo, error) {
	photo, err := s.authorizeModify(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := in.Validate(); err != nil {
		return nil, validation.AsAppError(err)
	}

	photo.Title = in.Title
	photo.Description = in.Description
	photo.ImageURL = in.ImageURL
	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return photo, nil
}

// SetVisibility switches a photo between public and private. Existing likes
// are kept when a photo turns private.
func (s *PhotoService) SetVisibility(ctx context.Context, actor auth.Principal, id uint, visibility models.Visibility) (*models.Photo, error) {
	photo, err := s.authorizeModify(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateVisibility(visibility); err != nil {
		return nil, validation.AsAppError(err)
	}
	if photo.Visibility == visibility {
		return photo, nil
	}

	if err := s.photos.UpdateVisibility(ctx, id, visibility); err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	photo.Visibility = visibility
	return photo, nil
}

// Delete removes the photo together with its likes and favorites.
func (s *PhotoService) Delete(ctx context.Context, actor auth.Principal, id uint) error {
	if _, err := s.authorizeModify(ctx, actor, id); err != nil {
		return err
	}
	return storeError(s.photos.Delete(ctx, id), models.ErrNotFound)
}

// ListPublic returns the public feed.
func (s *PhotoService) ListPublic(ctx context.Context, limit, offset int) ([]*models.Photo, error) {
	photos, err := s.photos.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return photos, nil
}

// ListByOwner lists ownerID's photos. Private ones are included only when
// actor is the owner.
func (s *PhotoService) ListByOwner(ctx context.Context, actor auth.Principal, ownerID uint, limit, offset int) ([]*models.Photo, error) {
	includePrivate := actor.IsAuthenticated() && actor.ID == ownerID
	photos, err := s.photos.ListByOwner(ctx, ownerID, includePrivate, limit, offset)
	if err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return photos, nil
}

func (s *PhotoService) authorizeModify(ctx context.Context, actor auth.Principal, id uint) (*models.Photo, error) {
	photo, err := findPhoto(ctx, s.photos, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeModify(photo, actor); err != nil {
		return nil, err
	}
	return photo, nil
}
