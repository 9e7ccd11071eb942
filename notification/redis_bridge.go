// Package notification adapts the external notification and presence layer
// to the messaging core.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
)

const (
	DefaultPresenceTTL   = 45 * time.Second
	DefaultChannelPrefix = "notifications"
	presencePrefix       = "presence:"
)

// RedisBridge keeps presence as expiring keys and publishes notifications
// on a per-recipient channel the delivery service subscribes to.
type RedisBridge struct {
	client        *redis.Client
	presenceTTL   time.Duration
	channelPrefix string
	now           func() time.Time
}

func NewRedisBridge(client *redis.Client, presenceTTL time.Duration, channelPrefix string) *RedisBridge {
	if presenceTTL <= 0 {
		presenceTTL = DefaultPresenceTTL
	}
	if channelPrefix == "" {
		channelPrefix = DefaultChannelPrefix
	}
	return &RedisBridge{
		client:        client,
		presenceTTL:   presenceTTL,
		channelPrefix: channelPrefix,
		now:           time.Now,
	}
}

func presenceKey(engagementID, userID string) string {
	return presencePrefix + engagementID + ":" + userID
}

// Channel is the pub/sub channel notifications for recipientID go to.
func (b *RedisBridge) Channel(recipientID string) string {
	return b.channelPrefix + ":" + recipientID
}

// Touch marks userID as viewing the engagement's room until the TTL lapses.
func (b *RedisBridge) Touch(ctx context.Context, userID, engagementID string) error {
	if err := b.client.Set(ctx, presenceKey(engagementID, userID), b.now().Unix(), b.presenceTTL).Err(); err != nil {
		return fmt.Errorf("notification: touch presence: %w", err)
	}
	return nil
}

func (b *RedisBridge) Clear(ctx context.Context, userID, engagementID string) error {
	if err := b.client.Del(ctx, presenceKey(engagementID, userID)).Err(); err != nil {
		return fmt.Errorf("notification: clear presence: %w", err)
	}
	return nil
}

func (b *RedisBridge) IsPresent(ctx context.Context, userID, engagementID string) (bool, error) {
	n, err := b.client.Exists(ctx, presenceKey(engagementID, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("notification: check presence: %w", err)
	}
	return n > 0, nil
}

func (b *RedisBridge) NotifyNewMessage(ctx context.Context, engagementID, senderID, recipientID, content string) error {
	return b.publish(ctx, dto.Notification{
		Type:         dto.NotificationNewMessage,
		EngagementID: engagementID,
		RecipientID:  recipientID,
		ActorID:      senderID,
		Content:      content,
	})
}

func (b *RedisBridge) NotifyRoomClosed(ctx context.Context, engagementID, closedBy, recipientID string) error {
	return b.publish(ctx, dto.Notification{
		Type:         dto.NotificationRoomClosed,
		EngagementID: engagementID,
		RecipientID:  recipientID,
		ActorID:      closedBy,
	})
}

func (b *RedisBridge) publish(ctx context.Context, n dto.Notification) error {
	n.SentAt = b.now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notification: marshal %s: %w", n.Type, err)
	}
	if err := b.client.Publish(ctx, b.Channel(n.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("notification: publish %s: %w", n.Type, err)
	}
	return nil
}
