package usecase

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/dto"
)

// EngagementDirectory resolves who may talk inside an engagement's room.
// An unknown engagement is reported as gorm.ErrRecordNotFound or a
// NOT_FOUND apperror.
type EngagementDirectory interface {
	ResolveParticipants(ctx context.Context, engagementID string) (dto.Participants, error)
	ListUserEngagements(ctx context.Context, userID string) ([]dto.Participants, error)
}

// PaymentLedger covers both direct and bulk campaign payments.
type PaymentLedger interface {
	IsPaymentVerified(ctx context.Context, engagementID string) (bool, error)
}

type ContentFilter interface {
	Redact(text string) string
}

// NotificationBridge is driven only through Notifier, which runs it off the
// request path and swallows its errors.
type NotificationBridge interface {
	NotifyNewMessage(ctx context.Context, engagementID, senderID, recipientID, content string) error
	NotifyRoomClosed(ctx context.Context, engagementID, closedBy, recipientID string) error
	IsPresent(ctx context.Context, userID, engagementID string) (bool, error)
}
