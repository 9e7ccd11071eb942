package repository

import (
	"context"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadReceiptRepository struct {
	Repository[entity.MessageReadReceipt]
}

func NewReadReceiptRepository() *ReadReceiptRepository {
	return &ReadReceiptRepository{}
}

// Upsert writes the receipt for (message, reader), refreshing read_at when
// one already exists, and returns the stored row.
func (repository ReadReceiptRepository) Upsert(ctx context.Context, db *gorm.DB, messageID, readerID string, readAt time.Time) (*entity.MessageReadReceipt, error) {
	receipt := &entity.MessageReadReceipt{
		MessageID: messageID,
		ReaderID:  readerID,
		ReadAt:    readAt,
	}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "reader_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"read_at", "updated_at"}),
		}).
		Create(receipt).Error
	if err != nil {
		return nil, err
	}

	var stored entity.MessageReadReceipt
	if err := db.WithContext(ctx).
		Where("message_id = ? AND reader_id = ?", messageID, readerID).
		Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (repository ReadReceiptRepository) FindByMessageID(ctx context.Context, db *gorm.DB, messageID string) ([]entity.MessageReadReceipt, error) {
	var receipts []entity.MessageReadReceipt
	err := db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("read_at DESC").
		Find(&receipts).Error
	return receipts, err
}

func (repository ReadReceiptRepository) CountByMessageAndReader(ctx context.Context, db *gorm.DB, messageID, readerID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.MessageReadReceipt{}).
		Where("message_id = ? AND reader_id = ?", messageID, readerID).
		Count(&count).Error
	return count, err
}
