// Package notifications delivers interaction events to connected photo owners.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"gallery/internal/auth"
	"gallery/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix  = "notifications:user:"
	userChannelPattern = userChannelPrefix + "*"

	// EventPhotoLiked is sent to a photo's owner when someone likes it.
	EventPhotoLiked = "photo_liked"
)

// Event is the JSON envelope written to websocket clients.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoLikedPayload describes who liked which photo.
type PhotoLikedPayload struct {
	PhotoID   uint   `json:"photo_id"`
	LikerID   uint   `json:"liker_id"`
	LikerName string `json:"liker_name"`
}

// Notifier publishes events into per-user redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel returns the redis channel for userID.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}

// PublishUser sends a raw payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// NotifyPhotoLiked tells ownerID that liker liked photoID.
func (n *Notifier) NotifyPhotoLiked(ctx context.Context, ownerID, photoID uint, liker auth.Principal) error {
	payload, err := json.Marshal(Event{
		Type: EventPhotoLiked,
		Payload: PhotoLikedPayload{
			PhotoID:   photoID,
			LikerID:   liker.ID,
			LikerName: liker.DisplayName,
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := n.PublishUser(ctx, ownerID, string(payload)); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues(EventPhotoLiked).Inc()
	return nil
}

// StartPatternSubscriber subscribes to every user channel and calls
// onMessage with the recipient and payload until ctx is cancelled.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, onMessage func(userID uint, payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPattern)
	// wait for the subscription so nothing published right after is lost
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", userChannelPattern, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID, ok := parseUserChannel(msg.Channel)
				if !ok {
					slog.Warn("invalid notification channel", slog.String("channel", msg.Channel))
					continue
				}
				dispatch(userID, msg.Payload, onMessage)
			}
		}
	}()

	return nil
}

func dispatch(userID uint, payload string, onMessage func(uint, string)) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification subscriber",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	onMessage(userID, payload)
}

func parseUserChannel(channel string) (uint, bool) {
	raw, ok := strings.CutPrefix(channel, userChannelPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
