package entity

import "time"

type MessageReadReceipt struct {
	BaseEntity
	MessageID string    `json:"messageId" gorm:"type:varchar(255);not null;uniqueIndex:idx_receipt_message_reader,priority:1"`
	ReaderID  string    `json:"readerId" gorm:"type:varchar(255);not null;uniqueIndex:idx_receipt_message_reader,priority:2;index"`
	ReadAt    time.Time `json:"readAt" gorm:"not null"`

	Message Message `json:"-" gorm:"foreignKey:MessageID;references:ID"`
}
