package entity

import "github.com/shuchit-srx/stoory-backend-sub003/enum"

// Payment rows are written by the payment ledger. A DIRECT payment names
// its application; a BULK payment covers applications via line items.
type Payment struct {
	BaseEntity
	Type          enum.PaymentType   `json:"type" gorm:"type:varchar(10);not null"`
	ApplicationID *string            `json:"applicationId,omitempty" gorm:"type:varchar(255);index"`
	CampaignID    *string            `json:"campaignId,omitempty" gorm:"type:varchar(255);index"`
	Status        enum.PaymentStatus `json:"status" gorm:"type:varchar(20);not null;index"`

	LineItems []PaymentLineItem `json:"lineItems,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

type PaymentLineItem struct {
	BaseEntity
	PaymentID     string `json:"paymentId" gorm:"type:varchar(255);not null;index"`
	ApplicationID string `json:"applicationId" gorm:"type:varchar(255);not null;index"`
}
