package entity

import "github.com/shuchit-srx/stoory-backend-sub003/enum"

// ChatRoom is the single conversation of one engagement (application).
// SequenceCounter equals the sequence number of the newest message.
type ChatRoom struct {
	BaseEntity
	EngagementID    string          `json:"engagementId" gorm:"type:varchar(255);not null;uniqueIndex:idx_chat_room_engagement"`
	Status          enum.RoomStatus `json:"status" gorm:"type:varchar(10);not null;index"`
	SequenceCounter int64           `json:"sequenceCounter" gorm:"not null"`
}
