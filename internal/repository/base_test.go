package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped record not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: likes.photo_id, likes.user_id"), ErrDuplicate},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, ErrNotFound},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, ErrNotFound},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("op", tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		got := translateError("list photos", boom)
		assert.ErrorIs(t, got, boom)
		assert.EqualError(t, got, "list photos: connection reset")
	})
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{-5, -1, 20, 0},
		{50, 10, 50, 10},
		{500, 0, 100, 0},
	}
	for _, tt := range tests {
		l, o := normalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, l)
		assert.Equal(t, tt.wantOffset, o)
	}
}
