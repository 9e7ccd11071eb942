package repository

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"gorm.io/gorm"
)

// PaymentRepository answers payment questions from the ledger tables.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// IsPaymentVerified reports whether a verified payment covers the
// engagement, either directly or as a line item of a bulk campaign payment.
func (repository *PaymentRepository) IsPaymentVerified(ctx context.Context, engagementID string) (bool, error) {
	db := repository.db.WithContext(ctx)
	coveredBy := db.Model(&entity.PaymentLineItem{}).
		Select("payment_id").
		Where("application_id = ?", engagementID)

	var count int64
	err := db.Model(&entity.Payment{}).
		Where("status = ?", enum.PaymentStatusVerified).
		Where("(type = ? AND application_id = ?) OR (type = ? AND id IN (?))",
			enum.PaymentTypeDirect, engagementID,
			enum.PaymentTypeBulk, coveredBy).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
