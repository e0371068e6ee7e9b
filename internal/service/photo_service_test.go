package service

import (
	"context"
	"errors"
	"testing"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoService_Create(t *testing.T) {
	store := newMemStore()
	svc := NewPhotoService(store, store)
	ctx := context.Background()

	photo, err := svc.Create(ctx, principal(1), CreatePhotoInput{
		PhotoDetails: validation.PhotoDetails{Title: "  Harbor  ", ImageURL: "https://cdn.example.com/h.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), photo.OwnerID)
	assert.Equal(t, "Harbor", photo.Title)
	assert.Equal(t, models.VisibilityPrivate, photo.Visibility)

	_, err = svc.Create(ctx, auth.Anonymous, CreatePhotoInput{PhotoDetails: validation.PhotoDetails{Title: "x"}})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = svc.Create(ctx, principal(1), CreatePhotoInput{PhotoDetails: validation.PhotoDetails{Title: ""}})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.Create(ctx, principal(1), CreatePhotoInput{
		PhotoDetails: validation.PhotoDetails{Title: "x"},
		Visibility:   "friends",
	})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestPhotoService_Get(t *testing.T) {
	store := newMemStore(publicPhoto(10, 1), privatePhoto(11, 1))
	store.likes[pair{10, 2}] = true
	svc := NewPhotoService(store, store)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      uint
		actor   auth.Principal
		wantErr error
	}{
		{"public, anonymous", 10, auth.Anonymous, nil},
		{"private, owner", 11, principal(1), nil},
		{"private, other user", 11, principal(2), models.ErrPhotoNotVisible},
		{"private, anonymous", 11, auth.Anonymous, models.ErrUnauthenticated},
		{"missing, anonymous", 404, auth.Anonymous, models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo, err := svc.Get(ctx, tt.actor, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, photo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, photo.ID)
		})
	}

	photo, err := svc.Get(ctx, auth.Anonymous, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), photo.LikesCount)
}

func TestPhotoService_GetCountFailure(t *testing.T) {
	store := newMemStore(publicPhoto(10, 1))
	store.countLikesErr = errors.New("timeout")
	svc := NewPhotoService(store, store)

	_, err := svc.Get(context.Background(), auth.Anonymous, 10)
	assert.Equal(t, models.CodeInternal, models.CodeOf(err))
}

func TestPhotoService_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates metadata", func(t *testing.T) {
		store := newMemStore(publicPhoto(10, 1))
		svc := NewPhotoService(store, store)

		photo, err := svc.Update(ctx, principal(1), 10, validation.PhotoDetails{Title: "New", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, "New", photo.Title)
		assert.Equal(t, "New", store.photos[10].Title)
	})

	t.Run("non owner cannot update", func(t *testing.T) {
		store := newMemStore(publicPhoto(10, 1))
		svc := NewPhotoService(store, store)

		_, err := svc.Update(ctx, principal(2), 10, validation.PhotoDetails{Title: "Mine now"})
		assert.ErrorIs(t, err, models.ErrNotPhotoOwner)
		assert.Equal(t, "p", store.photos[10].Title)
	})

	t.Run("missing photo before authentication", func(t *testing.T) {
		store := newMemStore()
		svc := NewPhotoService(store, store)

		_, err := svc.Update(ctx, auth.Anonymous, 10, validation.PhotoDetails{Title: "x"})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("owner toggles visibility", func(t *testing.T) {
		store := newMemStore(privatePhoto(10, 1))
		svc := NewPhotoService(store, store)

		photo, err := svc.SetVisibility(ctx, principal(1), 10, models.VisibilityPublic)
		require.NoError(t, err)
		assert.True(t, photo.IsPublic())
		assert.True(t, store.photos[10].IsPublic())

		_, err = svc.SetVisibility(ctx, principal(1), 10, "hidden")
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))

		_, err = svc.SetVisibility(ctx, principal(2), 10, models.VisibilityPrivate)
		assert.ErrorIs(t, err, models.ErrForbidden)
		_, err = svc.SetVisibility(ctx, auth.Anonymous, 10, models.VisibilityPrivate)
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})

	t.Run("owner deletes", func(t *testing.T) {
		store := newMemStore(publicPhoto(10, 1))
		store.likes[pair{10, 2}] = true
		svc := NewPhotoService(store, store)

		assert.ErrorIs(t, svc.Delete(ctx, principal(2), 10), models.ErrNotPhotoOwner)
		require.NoError(t, svc.Delete(ctx, principal(1), 10))
		assert.Empty(t, store.photos)
		assert.Empty(t, store.likes)
		assert.ErrorIs(t, svc.Delete(ctx, principal(1), 10), models.ErrNotFound)
	})
}

func TestPhotoService_Lists(t *testing.T) {
	store := newMemStore(publicPhoto(10, 1), privatePhoto(11, 1), publicPhoto(12, 2))
	svc := NewPhotoService(store, store)
	ctx := context.Background()

	feed, err := svc.ListPublic(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 2)

	visitor, err := svc.ListByOwner(ctx, principal(2), 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, visitor, 1)

	anonymous, err := svc.ListByOwner(ctx, auth.Anonymous, 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)

	own, err := svc.ListByOwner(ctx, principal(1), 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, own, 2)
}
