package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PhotoKeyPrefix     = "photo:%d"
	LikeCountKeyPrefix = "photo:%d:likes"
)

const (
	UserTTL      = 5 * time.Minute
	PhotoTTL     = 30 * time.Minute
	LikeCountTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PhotoKey(photoID uint) string {
	return fmt.Sprintf(PhotoKeyPrefix, photoID)
}

func LikeCountKey(photoID uint) string {
	return fmt.Sprintf(LikeCountKeyPrefix, photoID)
}

// Invalidate deletes keys; it is a no-op when caching is disabled.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePhoto drops the cached photo together with its like count.
func InvalidatePhoto(ctx context.Context, photoID uint) {
	Invalidate(ctx, PhotoKey(photoID), LikeCountKey(photoID))
}

func InvalidateLikeCount(ctx context.Context, photoID uint) {
	Invalidate(ctx, LikeCountKey(photoID))
}
