package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/metrics"
	"github.com/sirupsen/logrus"
)

const DefaultNotifyTimeout = 5 * time.Second

// Notifier fires bridge calls on detached goroutines. Nothing it does can
// fail or delay the operation that triggered it.
type Notifier struct {
	bridge  NotificationBridge
	log     *logrus.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewNotifier(bridge NotificationBridge, logger *logrus.Logger, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &Notifier{bridge: bridge, log: logger, timeout: timeout}
}

func (n *Notifier) NewMessage(ctx context.Context, engagementID, senderID, recipientID, content string) {
	n.dispatch(ctx, dto.NotificationNewMessage, engagementID, recipientID, func(ctx context.Context) error {
		return n.bridge.NotifyNewMessage(ctx, engagementID, senderID, recipientID, content)
	})
}

func (n *Notifier) RoomClosed(ctx context.Context, engagementID, closedBy, recipientID string) {
	n.dispatch(ctx, dto.NotificationRoomClosed, engagementID, recipientID, func(ctx context.Context) error {
		return n.bridge.NotifyRoomClosed(ctx, engagementID, closedBy, recipientID)
	})
}

// Wait blocks until every dispatched notification has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(parent context.Context, event, engagementID, recipientID string, send func(ctx context.Context) error) {
	if n == nil || n.bridge == nil {
		return
	}
	entry := n.log.WithFields(logrus.Fields{
		"event":        event,
		"engagementId": engagementID,
		"recipientId":  recipientID,
	})
	if recipientID == "" {
		entry.Warn("Skipping notification without recipient")
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.Notifications.WithLabelValues(event, "failed").Inc()
				entry.Errorf("Notification bridge panicked: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), n.timeout)
		defer cancel()

		// A presence lookup failure still notifies.
		present, err := n.bridge.IsPresent(ctx, recipientID, engagementID)
		if err != nil {
			entry.WithError(err).Warn("Failed to check presence")
		}
		if present {
			metrics.Notifications.WithLabelValues(event, "suppressed").Inc()
			entry.Debug("Recipient present in room, notification suppressed")
			return
		}

		if err := send(ctx); err != nil {
			metrics.Notifications.WithLabelValues(event, "failed").Inc()
			entry.WithError(err).Warn("Failed to deliver notification")
			return
		}
		metrics.Notifications.WithLabelValues(event, "sent").Inc()
	}()
}
