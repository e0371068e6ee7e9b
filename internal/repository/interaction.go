package repository

import (
	"context"

	"gallery/internal/cache"
	"gallery/internal/models"
	"gallery/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository stores likes and favorites. Both are keyed by
// (photo_id, user_id) and backed by a unique index.
type InteractionRepository interface {
	CreateLike(ctx context.Context, userID, photoID uint) error
	DeleteLike(ctx context.Context, userID, photoID uint) error
	LikeExists(ctx context.Context, userID, photoID uint) (bool, error)
	CountLikes(ctx context.Context, photoID uint) (int64, error)
	ListLikedPhotos(ctx context.Context, userID uint, limit, offset int) ([]*models.Photo, error)

	CreateFavorite(ctx context.Context, userID, photoID uint) error
	DeleteFavorite(ctx context.Context, userID, photoID uint) error
	FavoriteExists(ctx context.Context, userID, photoID uint) (bool, error)
	ListFavoritedPhotos(ctx context.Context, userID uint, limit, offset int) ([]*models.Photo, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// CreateLike inserts the like or returns ErrDuplicate when the pair already
// exists. ON CONFLICT DO NOTHING keeps racing inserts from surfacing as
// driver errors; the loser sees zero rows affected.
func (r *interactionRepository) CreateLike(ctx context.Context, userID, photoID uint) error {
	defer observability.TrackQuery("create", "likes")()

	like := &models.Like{PhotoID: photoID, UserID: userID}
	if err := r.insertOnce(ctx, like); err != nil {
		return translateError("create like", err)
	}
	cache.InvalidateLikeCount(ctx, photoID)
	return nil
}

func (r *interactionRepository) DeleteLike(ctx context.Context, userID, photoID uint) error {
	defer observability.TrackQuery("delete", "likes")()

	res := r.db.WithContext(ctx).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return translateError("delete like", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.InvalidateLikeCount(ctx, photoID)
	return nil
}

func (r *interactionRepository) LikeExists(ctx context.Context, userID, photoID uint) (bool, error) {
	defer observability.TrackQuery("exists", "likes")()
	return r.exists(ctx, &models.Like{}, userID, photoID)
}

// CountLikes returns the public like count of a photo.
func (r *interactionRepository) CountLikes(ctx context.Context, photoID uint) (int64, error) {
	defer observability.TrackQuery("count", "likes")()

	var count int64
	err := cache.Aside(ctx, cache.LikeCountKey(photoID), &count, cache.LikeCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("photo_id = ?", photoID).
			Count(&count).Error
	})
	if err != nil {
		return 0, translateError("count likes", err)
	}
	return count, nil
}

// ListLikedPhotos returns the photos userID liked that userID can still
// see, most recently liked first.
func (r *interactionRepository) ListLikedPhotos(ctx context.Context, userID uint, limit, offset int) ([]*models.Photo, error) {
	defer observability.TrackQuery("list_liked", "photos")()
	return r.listInteracted(ctx, "likes", userID, limit, offset)
}

// CreateFavorite behaves like CreateLike for favorites.
func (r *interactionRepository) CreateFavorite(ctx context.Context, userID, photoID uint) error {
	defer observability.TrackQuery("create", "favorites")()

	fav := &models.Favorite{PhotoID: photoID, UserID: userID}
	if err := r.insertOnce(ctx, fav); err != nil {
		return translateError("create favorite", err)
	}
	return nil
}

func (r *interactionRepository) DeleteFavorite(ctx context.Context, userID, photoID uint) error {
	defer observability.TrackQuery("delete", "favorites")()

	res := r.db.WithContext(ctx).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return translateError("delete favorite", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interactionRepository) FavoriteExists(ctx context.Context, userID, photoID uint) (bool, error) {
	defer observability.TrackQuery("exists", "favorites")()
	return r.exists(ctx, &models.Favorite{}, userID, photoID)
}

func (r *interactionRepository) ListFavoritedPhotos(ctx context.Context, userID uint, limit, offset int) ([]*models.Photo, error) {
	defer observability.TrackQuery("list_favorited", "photos")()
	return r.listInteracted(ctx, "favorites", userID, limit, offset)
}

func (r *interactionRepository) insertOnce(ctx context.Context, record interface{}) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *interactionRepository) exists(ctx context.Context, model interface{}, userID, photoID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count).Error
	if err != nil {
		return false, translateError("check interaction", err)
	}
	return count > 0, nil
}

// listInteracted joins photos with table (likes or favorites) for userID.
// Photos that turned private since are dropped unless userID owns them.
func (r *interactionRepository) listInteracted(ctx context.Context, table string, userID uint, limit, offset int) ([]*models.Photo, error) {
	limit, offset = normalizePage(limit, offset)

	var photos []*models.Photo
	err := r.db.WithContext(ctx).
		Select(photoColumns).
		Joins("JOIN "+table+" AS mine ON mine.photo_id = photos.id AND mine.user_id = ?", userID).
		Where("photos.visibility = ? OR photos.owner_id = ?", models.VisibilityPublic, userID).
		Order("mine.created_at DESC, photos.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, translateError("list "+table, err)
	}
	return photos, nil
}
