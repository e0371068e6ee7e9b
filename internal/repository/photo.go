package repository

import (
	"context"

	"gallery/internal/cache"
	"gallery/internal/models"
	"gallery/internal/observability"

	"gorm.io/gorm"
)

// PhotoRepository defines persistence operations for photos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uint) (*models.Photo, error)
	Update(ctx context.Context, photo *models.Photo) error
	UpdateVisibility(ctx context.Context, id uint, visibility models.Visibility) error
	Delete(ctx context.Context, id uint) error
	ListPublic(ctx context.Context, limit, offset int) ([]*models.Photo, error)
	ListByOwner(ctx context.Context, ownerID uint, includePrivate bool, limit, offset int) ([]*models.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	defer observability.TrackQuery("create", "photos")()

	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return translateError("create photo", err)
	}
	return nil
}

// GetByID returns the photo row. LikesCount is left at zero; counts are
// served by InteractionRepository.CountLikes.
func (r *photoRepository) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	defer observability.TrackQuery("get_by_id", "photos")()

	var photo models.Photo
	err := cache.Aside(ctx, cache.PhotoKey(id), &photo, cache.PhotoTTL, func() error {
		return translateError("get photo", r.db.WithContext(ctx).First(&photo, id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// Update saves the editable metadata of photo. Owner and visibility are not touched.
func (r *photoRepository) Update(ctx context.Context, photo *models.Photo) error {
	defer observability.TrackQuery("update", "photos")()

	res := r.db.WithContext(ctx).
		Model(&models.Photo{ID: photo.ID}).
		Select("title", "description", "image_url").
		Updates(map[string]interface{}{
			"title":       photo.Title,
			"description": photo.Description,
			"image_url":   photo.ImageURL,
		})
	if res.Error != nil {
		return translateError("update photo", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.InvalidatePhoto(ctx, photo.ID)
	return nil
}

func (r *photoRepository) UpdateVisibility(ctx context.Context, id uint, visibility models.Visibility) error {
	defer observability.TrackQuery("update_visibility", "photos")()

	res := r.db.WithContext(ctx).
		Model(&models.Photo{ID: id}).
		Update("visibility", visibility)
	if res.Error != nil {
		return translateError("update photo visibility", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.InvalidatePhoto(ctx, id)
	return nil
}

// Delete removes the photo and its likes and favorites in one transaction.
func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "photos")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Photo{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translateError("delete photo", err)
	}
	cache.InvalidatePhoto(ctx, id)
	return nil
}

// ListPublic returns the public feed, newest first, with like counts.
func (r *photoRepository) ListPublic(ctx context.Context, limit, offset int) ([]*models.Photo, error) {
	defer observability.TrackQuery("list_public", "photos")()

	limit, offset = normalizePage(limit, offset)
	var photos []*models.Photo
	err := r.db.WithContext(ctx).
		Select(photoColumns).
		Where("photos.visibility = ?", models.VisibilityPublic).
		Order("photos.created_at DESC, photos.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, translateError("list public photos", err)
	}
	return photos, nil
}

// ListByOwner returns a user's photos, newest first. Private photos are
// included only when includePrivate is set.
func (r *photoRepository) ListByOwner(ctx context.Context, ownerID uint, includePrivate bool, limit, offset int) ([]*models.Photo, error) {
	defer observability.TrackQuery("list_by_owner", "photos")()

	limit, offset = normalizePage(limit, offset)
	q := r.db.WithContext(ctx).
		Select(photoColumns).
		Where("photos.owner_id = ?", ownerID)
	if !includePrivate {
		q = q.Where("photos.visibility = ?", models.VisibilityPublic)
	}

	var photos []*models.Photo
	err := q.Order("photos.created_at DESC, photos.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, translateError("list photos by owner", err)
	}
	return photos, nil
}
