package usecase

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
)

type ChatUsecase interface {
	CreateRoom(ctx context.Context, engagementID string) (*entity.ChatRoom, error)
	GetRoom(ctx context.Context, userID, engagementID string) (*entity.ChatRoom, error)
	CloseRoom(ctx context.Context, engagementID, closedBy string) (*entity.ChatRoom, error)
	GetUserRooms(ctx context.Context, userID string) ([]res.RoomSummary, error)
}
