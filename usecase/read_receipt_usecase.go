package usecase

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
)

type ReadReceiptUsecase interface {
	// MarkRead returns a nil receipt and no error when readerID wrote the
	// message. A recorded receipt carries its message and room.
	MarkRead(ctx context.Context, messageID, readerID string) (*entity.MessageReadReceipt, error)
	GetReceipts(ctx context.Context, messageID string) ([]entity.MessageReadReceipt, error)
}
