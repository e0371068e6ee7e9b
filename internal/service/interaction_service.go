package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/observability"
	"gallery/internal/policy"
	"gallery/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Notifier tells photo owners about likes. Delivery is best effort.
type Notifier interface {
	NotifyPhotoLiked(ctx context.Context, ownerID, photoID uint, liker auth.Principal) error
}

// InteractionService implements the like and favorite state machines.
//
// Like requires a public photo owned by someone else. Favorite requires a
// photo the actor can see, which includes the actor's own private photos.
// Both are unique per (photo, user); a duplicate detected by the pre-check
// and one reported by the store produce the same Conflict.
type InteractionService struct {
	photos       repository.PhotoRepository
	interactions repository.InteractionRepository
	notifier     Notifier
}

// InteractionStatus is the actor's own like and favorite state for a photo.
type InteractionStatus struct {
	PhotoID   uint `json:"photo_id"`
	Liked     bool `json:"liked"`
	Favorited bool `json:"favorited"`
}

// NewInteractionService wires the state machines. notifier may be nil.
func NewInteractionService(
	photos repository.PhotoRepository,
	interactions repository.InteractionRepository,
	notifier Notifier,
) *InteractionService {
	return &InteractionService{
		photos:       photos,
		interactions: interactions,
		notifier:     notifier,
	}
}

// Like checks, in order: photo exists, actor authenticated, photo public,
// actor not the owner, no existing like.
func (s *InteractionService) Like(ctx context.Context, actor auth.Principal, photoID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "interaction.like", photoAttrs(actor, photoID)...)
	defer func() {
		observability.RecordInteraction("like", "create", outcomeOf(err))
		observability.EndSpan(span, err)
	}()

	photo, err := findPhoto(ctx, s.photos, photoID)
	if err != nil {
		return err
	}
	switch {
	case photo == nil:
		return models.ErrNotFound
	case actor.IsAnonymous():
		return models.ErrUnauthenticated
	case !photo.IsPublic():
		return models.ErrPhotoNotPublic
	case photo.OwnerID == actor.ID:
		return models.ErrOwnPhoto
	}

	liked, err := s.interactions.LikeExists(ctx, actor.ID, photoID)
	if err != nil {
		return storeError(err, models.ErrNotFound)
	}
	if liked {
		return models.ErrAlreadyLiked
	}

	if err := s.interactions.CreateLike(ctx, actor.ID, photoID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.ErrAlreadyLiked
		}
		return storeError(err, models.ErrNotFound)
	}

	s.notifyLiked(ctx, photo, actor)
	return nil
}

// Unlike removes the actor's like. It does not require the photo to still be
// public.
func (s *InteractionService) Unlike(ctx context.Context, actor auth.Principal, photoID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "interaction.unlike", photoAttrs(actor, photoID)...)
	defer func() {
		observability.RecordInteraction("like", "delete", outcomeOf(err))
		observability.EndSpan(span, err)
	}()

	if err := s.requireExisting(ctx, actor, photoID); err != nil {
		return err
	}
	return storeError(s.interactions.DeleteLike(ctx, actor.ID, photoID), models.ErrNotLiked)
}

// Favorite checks, in order: photo exists, actor authenticated, actor may
// view the photo, no existing favorite.
func (s *InteractionService) Favorite(ctx context.Context, actor auth.Principal, photoID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "interaction.favorite", photoAttrs(actor, photoID)...)
	defer func() {
		observability.RecordInteraction("favorite", "create", outcomeOf(err))
		observability.EndSpan(span, err)
	}()

	photo, err := findPhoto(ctx, s.photos, photoID)
	if err != nil {
		return err
	}
	switch {
	case photo == nil:
		return models.ErrNotFound
	case actor.IsAnonymous():
		return models.ErrUnauthenticated
	case !policy.CanView(photo, actor):
		return models.ErrPhotoNotVisible
	}

	favorited, err := s.interactions.FavoriteExists(ctx, actor.ID, photoID)
	if err != nil {
		return storeError(err, models.ErrNotFound)
	}
	if favorited {
		return models.ErrAlreadyFavorited
	}

	if err := s.interactions.CreateFavorite(ctx, actor.ID, photoID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.ErrAlreadyFavorited
		}
		return storeError(err, models.ErrNotFound)
	}
	return nil
}

// Unfavorite removes the actor's favorite.
func (s *InteractionService) Unfavorite(ctx context.Context, actor auth.Principal, photoID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "interaction.unfavorite", photoAttrs(actor, photoID)...)
	defer func() {
		observability.RecordInteraction("favorite", "delete", outcomeOf(err))
		observability.EndSpan(span, err)
	}()

	if err := s.requireExisting(ctx, actor, photoID); err != nil {
		return err
	}
	return storeError(s.interactions.DeleteFavorite(ctx, actor.ID, photoID), models.ErrNotFavorited)
}

// LikeCount returns the public like count of a photo actor may view.
func (s *InteractionService) LikeCount(ctx context.Context, actor auth.Principal, photoID uint) (int64, error) {
	photo, err := findPhoto(ctx, s.photos, photoID)
	if err != nil {
		return 0, err
	}
	if err := policy.AuthorizeView(photo, actor); err != nil {
		return 0, err
	}
	count, err := s.interactions.CountLikes(ctx, photoID)
	if err != nil {
		return 0, storeError(err, models.ErrNotFound)
	}
	return count, nil
}

// Status reports whether actor liked and favorited the photo.
func (s *InteractionService) Status(ctx context.Context, actor auth.Principal, photoID uint) (*InteractionStatus, error) {
	photo, err := findPhoto(ctx, s.photos, photoID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeView(photo, actor); err != nil {
		return nil, err
	}

	status := &InteractionStatus{PhotoID: photoID}
	if actor.IsAnonymous() {
		return status, nil
	}
	if status.Liked, err = s.interactions.LikeExists(ctx, actor.ID, photoID); err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	if status.Favorited, err = s.interactions.FavoriteExists(ctx, actor.ID, photoID); err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return status, nil
}

// ListLikedPhotos returns the actor's own liked photos. There is no way to
// list another user's likes.
func (s *InteractionService) ListLikedPhotos(ctx context.Context, actor auth.Principal, limit, offset int) ([]*models.Photo, error) {
	if actor.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}
	photos, err := s.interactions.ListLikedPhotos(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return photos, nil
}

// ListFavoritedPhotos returns the actor's own favorites.
func (s *InteractionService) ListFavoritedPhotos(ctx context.Context, actor auth.Principal, limit, offset int) ([]*models.Photo, error) {
	if actor.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}
	photos, err := s.interactions.ListFavoritedPhotos(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, storeError(err, models.ErrNotFound)
	}
	return photos, nil
}

func (s *InteractionService) requireExisting(ctx context.Context, actor auth.Principal, photoID uint) error {
	photo, err := findPhoto(ctx, s.photos, photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return models.ErrNotFound
	}
	if actor.IsAnonymous() {
		return models.ErrUnauthenticated
	}
	return nil
}

func (s *InteractionService) notifyLiked(ctx context.Context, photo *models.Photo, liker auth.Principal) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyPhotoLiked(ctx, photo.OwnerID, photo.ID, liker); err != nil {
		slog.WarnContext(ctx, "failed to publish like notification",
			slog.Uint64("photo_id", uint64(photo.ID)),
			slog.String("error", err.Error()),
		)
	}
}

func photoAttrs(actor auth.Principal, photoID uint) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("photo.id", int64(photoID)),
		attribute.Int64("user.id", int64(actor.ID)),
	}
}

// outcomeOf turns err into a metrics label such as "ok", "conflict" or
// "forbidden_own_photo".
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return "internal_error"
	}
	label := strings.ToLower(appErr.Code)
	if appErr.Reason != "" {
		label += "_" + strings.ToLower(appErr.Reason)
	}
	return label
}
