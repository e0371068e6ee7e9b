package repository

import (
	"context"
	"strings"
	"time"

	"gallery/internal/cache"
	"gallery/internal/models"
	"gallery/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the cache representation of a user. The password hash is
// never written to redis.
type cachedUser struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetByID loads a user without its password hash. Use GetByEmail for
// credential checks.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get_by_id", "users")()

	var cached cachedUser
	err := cache.Aside(ctx, cache.UserKey(id), &cached, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			return translateError("get user", err)
		}
		cached = cachedUser{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			IsAdmin:     user.IsAdmin,
			CreatedAt:   user.CreatedAt,
			UpdatedAt:   user.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:          cached.ID,
		Email:       cached.Email,
		DisplayName: cached.DisplayName,
		IsAdmin:     cached.IsAdmin,
		CreatedAt:   cached.CreatedAt,
		UpdatedAt:   cached.UpdatedAt,
	}, nil
}

// GetByEmail looks a user up by case-insensitive email, password hash included.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("get_by_email", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, translateError("get user by email", err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError("create user", err)
	}
	return nil
}

// Delete removes the user, their photos and every like and favorite that
// references either.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "users")()

	var photoIDs, likedIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Photo{}).Where("owner_id = ?", id).Pluck("id", &photoIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Like{}).Where("user_id = ?", id).Pluck("photo_id", &likedIDs).Error; err != nil {
			return err
		}
		if len(photoIDs) > 0 {
			if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", photoIDs).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translateError("delete user", err)
	}

	cache.InvalidateUser(ctx, id)
	for _, photoID := range photoIDs {
		cache.InvalidatePhoto(ctx, photoID)
	}
	for _, photoID := range likedIDs {
		cache.InvalidateLikeCount(ctx, photoID)
	}
	return nil
}
