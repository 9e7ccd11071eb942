package entity

import "github.com/shuchit-srx/stoory-backend-sub003/enum"

type Message struct {
	BaseEntity
	RoomID         string             `json:"roomId" gorm:"type:varchar(255);not null;uniqueIndex:idx_message_room_sequence,priority:1"`
	SenderID       string             `json:"senderId" gorm:"type:varchar(255);not null;index"`
	Content        string             `json:"content" gorm:"type:TEXT;not null"`
	AttachmentRef  *string            `json:"attachmentRef,omitempty" gorm:"type:varchar(512)"`
	SequenceNumber int64              `json:"sequenceNumber" gorm:"not null;uniqueIndex:idx_message_room_sequence,priority:2"`
	Status         enum.MessageStatus `json:"status" gorm:"type:varchar(20);not null"`

	Room ChatRoom `json:"-" gorm:"foreignKey:RoomID;references:ID"`
}
