package repository

import (
	"context"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"gorm.io/gorm"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// FindByIDWithRoom loads a message together with the room it belongs to.
func (repository MessageRepository) FindByIDWithRoom(ctx context.Context, db *gorm.DB, id string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Preload("Room").
		Where("id = ?", id).
		Take(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (repository MessageRepository) FindPageByRoomID(ctx context.Context, db *gorm.DB, roomID string, limit, offset int) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("sequence_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (repository MessageRepository) CountByRoomID(ctx context.Context, db *gorm.DB, roomID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

// FindLatestByRoomIDs returns the newest message of each room in one query.
// A room's counter always equals the sequence number of its newest message.
func (repository MessageRepository) FindLatestByRoomIDs(ctx context.Context, db *gorm.DB, roomIDs []string) ([]entity.Message, error) {
	var messages []entity.Message
	if len(roomIDs) == 0 {
		return messages, nil
	}
	err := db.WithContext(ctx).
		Joins("JOIN t_chat_room ON t_chat_room.id = t_message.room_id AND t_chat_room.sequence_counter = t_message.sequence_number").
		Where("t_message.room_id IN ?", roomIDs).
		Find(&messages).Error
	return messages, err
}

type unreadRow struct {
	RoomID string
	Unread int64
}

// CountUnreadByRoomIDs counts, per room, the messages not sent by readerID
// that readerID holds no receipt for. Rooms without unread messages are
// absent from the result.
func (repository MessageRepository) CountUnreadByRoomIDs(ctx context.Context, db *gorm.DB, roomIDs []string, readerID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}

	var rows []unreadRow
	err := db.WithContext(ctx).
		Model(&entity.Message{}).
		Select("t_message.room_id AS room_id, COUNT(*) AS unread").
		Joins("LEFT JOIN t_message_read_receipt ON t_message_read_receipt.message_id = t_message.id AND t_message_read_receipt.reader_id = ?", readerID).
		Where("t_message.room_id IN ? AND t_message.sender_id <> ? AND t_message_read_receipt.id IS NULL", roomIDs, readerID).
		Group("t_message.room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RoomID] = row.Unread
	}
	return counts, nil
}

func (repository MessageRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id string, status enum.MessageStatus) error {
	return db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// MarkDelivered promotes SENT to DELIVERED and leaves any other status alone.
func (repository MessageRepository) MarkDelivered(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	result := db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ? AND status = ?", id, enum.MessageStatusSent).
		Updates(map[string]interface{}{
			"status":     enum.MessageStatusDelivered,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
