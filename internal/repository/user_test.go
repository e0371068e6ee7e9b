package repository

import (
	"context"
	"regexp"
	"testing"

	"gallery/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedEmail string
		expectedErr   error
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "display_name", "password", "is_admin"}).
						AddRow(1, "alice@example.com", "Alice", "secret-hash", true))
			},
			expectedEmail: "alice@example.com",
		},
		{
			name:   "Not Found",
			userID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(2, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedEmail, user.Email)
				assert.True(t, user.IsAdmin)
				assert.Empty(t, user.Password)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_Normalizes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("alice@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(1, "alice@example.com", "hash"))

	user, err := repo.GetByEmail(context.Background(), "  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Email: "Bob@Example.com", DisplayName: "Bob", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "bob@example.com", first.Email)

	second := &models.User{Email: "bob@example.com", DisplayName: "Bobby", Password: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicate)

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupSQLite(t)
	users := NewUserRepository(db)
	interactions := NewInteractionRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	alicePhoto := seedPhoto(t, db, alice.ID, models.VisibilityPublic, "alice's")
	bobPhoto := seedPhoto(t, db, bob.ID, models.VisibilityPublic, "bob's")

	require.NoError(t, interactions.CreateLike(ctx, bob.ID, alicePhoto.ID))
	require.NoError(t, interactions.CreateFavorite(ctx, bob.ID, alicePhoto.ID))
	require.NoError(t, interactions.CreateLike(ctx, alice.ID, bobPhoto.ID))
	require.NoError(t, interactions.CreateFavorite(ctx, alice.ID, alicePhoto.ID))

	require.NoError(t, users.Delete(ctx, alice.ID))

	var photos, likes, favorites int64
	require.NoError(t, db.Model(&models.Photo{}).Count(&photos).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	assert.Equal(t, int64(1), photos)
	assert.Zero(t, likes)
	assert.Zero(t, favorites)

	_, err := users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, alice.ID), ErrNotFound)
}
