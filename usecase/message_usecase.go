package usecase

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID, engagementID, content string, attachmentRef *string) (*entity.Message, error)
	GetHistory(ctx context.Context, engagementID string, limit, offset int) (res.HistoryResponse, error)
	GetMessage(ctx context.Context, messageID string) (*entity.Message, error)
	MarkDelivered(ctx context.Context, messageID string) (bool, error)
}

// ClampPage applies the history paging bounds. A zero limit means the
// default; anything else is clamped into [1, MaxHistoryLimit].
func ClampPage(limit, offset int) (int, int) {
	switch {
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit < 1:
		limit = 1
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
