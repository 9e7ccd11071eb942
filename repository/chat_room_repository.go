package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMultipleRooms = errors.New("repository: more than one room for engagement")
	ErrRoomNotActive = errors.New("repository: room is not active")
)

type ChatRoomRepository struct {
	Repository[entity.ChatRoom]
}

func NewChatRoomRepository() *ChatRoomRepository {
	return &ChatRoomRepository{}
}

// FindByEngagementID returns nil, nil when the engagement has no room yet.
func (repository ChatRoomRepository) FindByEngagementID(ctx context.Context, db *gorm.DB, engagementID string) (*entity.ChatRoom, error) {
	var rooms []entity.ChatRoom
	err := db.WithContext(ctx).
		Where("engagement_id = ?", engagementID).
		Limit(2).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	switch len(rooms) {
	case 0:
		return nil, nil
	case 1:
		return &rooms[0], nil
	}
	return nil, ErrMultipleRooms
}

func (repository ChatRoomRepository) FindByEngagementIDs(ctx context.Context, db *gorm.DB, engagementIDs []string) ([]entity.ChatRoom, error) {
	var rooms []entity.ChatRoom
	if len(engagementIDs) == 0 {
		return rooms, nil
	}
	err := db.WithContext(ctx).
		Where("engagement_id IN ?", engagementIDs).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

// InsertIfAbsent inserts room unless the engagement already has one.
// created is false when another writer got there first; the unique index
// on engagement_id is what decides the race.
func (repository ChatRoomRepository) InsertIfAbsent(ctx context.Context, db *gorm.DB, room *entity.ChatRoom) (created bool, err error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "engagement_id"}},
			DoNothing: true,
		}).
		Create(room)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// NextSequence bumps the counter of an active room and returns the new
// value. The increment happens in the UPDATE itself, so the row stays
// locked until tx commits and concurrent senders queue behind it.
func (repository ChatRoomRepository) NextSequence(ctx context.Context, tx *gorm.DB, roomID string) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&entity.ChatRoom{}).
		Where("id = ? AND status = ?", roomID, enum.RoomStatusActive).
		Updates(map[string]interface{}{
			"sequence_counter": gorm.Expr("sequence_counter + ?", 1),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrRoomNotActive
	}

	var room entity.ChatRoom
	if err := repository.FindById(ctx, tx, &room, roomID); err != nil {
		return 0, err
	}
	return room.SequenceCounter, nil
}

// Close moves an active room to CLOSED. closed is false if the room was
// already closed.
func (repository ChatRoomRepository) Close(ctx context.Context, db *gorm.DB, roomID string) (closed bool, err error) {
	result := db.WithContext(ctx).
		Model(&entity.ChatRoom{}).
		Where("id = ? AND status = ?", roomID, enum.RoomStatusActive).
		Updates(map[string]interface{}{
			"status":     enum.RoomStatusClosed,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
