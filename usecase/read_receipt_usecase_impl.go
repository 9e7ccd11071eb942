package usecase

import (
	"context"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/metrics"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReadReceiptUsecaseImpl struct {
	Receipts *repository.ReadReceiptRepository
	Messages *repository.MessageRepository
	Access   AccessUsecase
	*logrus.Logger
	*gorm.DB
	now func() time.Time
}

func NewReadReceiptUsecase(
	receipts *repository.ReadReceiptRepository,
	messages *repository.MessageRepository,
	access AccessUsecase,
	logger *logrus.Logger,
	DB *gorm.DB,
) *ReadReceiptUsecaseImpl {
	return &ReadReceiptUsecaseImpl{
		Receipts: receipts,
		Messages: messages,
		Access:   access,
		Logger:   logger,
		DB:       DB,
		now:      time.Now,
	}
}

func (uc *ReadReceiptUsecaseImpl) MarkRead(ctx context.Context, messageID, readerID string) (*entity.MessageReadReceipt, error) {
	if messageID == "" {
		return nil, apperror.Validation("messageId is required")
	}
	message, err := uc.Messages.FindByIDWithRoom(ctx, uc.DB, messageID)
	if err != nil {
		return nil, apperror.Downstream(err, "find message %s", messageID)
	}
	if message.SenderID == readerID {
		return nil, nil
	}

	if _, err := uc.Access.RequireAccess(ctx, readerID, message.Room.EngagementID); err != nil {
		return nil, err
	}

	var receipt *entity.MessageReadReceipt
	err = uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		receipt, err = uc.Receipts.Upsert(ctx, tx, messageID, readerID, uc.now())
		if err != nil {
			return err
		}
		return uc.Messages.UpdateStatus(ctx, tx, messageID, enum.MessageStatusRead)
	})
	if err != nil {
		uc.Logger.WithError(err).WithFields(logrus.Fields{
			"messageId": messageID,
			"readerId":  readerID,
		}).Error("Failed to record read receipt")
		return nil, apperror.Downstream(err, "mark message %s read", messageID)
	}

	message.Status = enum.MessageStatusRead
	receipt.Message = *message
	metrics.ReadReceipts.Inc()
	return receipt, nil
}

func (uc *ReadReceiptUsecaseImpl) GetReceipts(ctx context.Context, messageID string) ([]entity.MessageReadReceipt, error) {
	receipts, err := uc.Receipts.FindByMessageID(ctx, uc.DB, messageID)
	if err != nil {
		return nil, apperror.Downstream(err, "find receipts of message %s", messageID)
	}
	return receipts, nil
}
