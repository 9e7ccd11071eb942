package usecase

import (
	"context"
	"errors"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"gorm.io/gorm"
)

// lookupRoom returns nil, nil when the engagement has no room. Two rooms for
// one engagement are reported, never repaired.
func lookupRoom(ctx context.Context, rooms *repository.ChatRoomRepository, db *gorm.DB, engagementID string) (*entity.ChatRoom, error) {
	room, err := rooms.FindByEngagementID(ctx, db, engagementID)
	if errors.Is(err, repository.ErrMultipleRooms) {
		return nil, apperror.Wrap(apperror.KindDataIntegrity, err,
			"engagement %s has more than one chat room, please contact support", engagementID)
	}
	if err != nil {
		return nil, apperror.Downstream(err, "find room of engagement %s", engagementID)
	}
	return room, nil
}
