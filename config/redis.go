package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/shuchit-srx/stoory-backend-sub003/notification"
	"github.com/sirupsen/logrus"
)

// Bridge is the presence and notification side the websocket handler and
// the usecases share.
type Bridge interface {
	Touch(ctx context.Context, userID, engagementID string) error
	Clear(ctx context.Context, userID, engagementID string) error
	IsPresent(ctx context.Context, userID, engagementID string) (bool, error)
	NotifyNewMessage(ctx context.Context, engagementID, senderID, recipientID, content string) error
	NotifyRoomClosed(ctx context.Context, engagementID, closedBy, recipientID string) error
}

// NewBridge connects to redis when enabled. An unreachable redis degrades to
// the no-op bridge: messaging keeps working without notifications.
func NewBridge(cfg *common.Config, log *logrus.Logger) (Bridge, func()) {
	redisCfg := cfg.GetRedisConfig()
	notifyCfg := cfg.GetNotificationConfig()
	if !redisCfg.Enabled {
		log.Info("Redis disabled, notifications are dropped")
		return notification.NoopBridge{}, func() {}
	}

	opts, err := redis.ParseURL(redisCfg.URL)
	if err != nil {
		log.WithError(err).Error("Invalid REDIS_URL, notifications are dropped")
		return notification.NoopBridge{}, func() {}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable, notifications are dropped")
		_ = client.Close()
		return notification.NoopBridge{}, func() {}
	}

	log.Info("Connected to redis")
	bridge := notification.NewRedisBridge(client, notifyCfg.PresenceTTL, notifyCfg.ChannelPrefix)
	return bridge, func() { _ = client.Close() }
}
