package dto

const (
	NotificationNewMessage = "chat.new_message"
	NotificationRoomClosed = "chat.room_closed"
)

// Notification is what the bridge hands to the delivery layer for a
// participant who is not looking at the room.
type Notification struct {
	Type         string `json:"type"`
	EngagementID string `json:"engagementId"`
	RecipientID  string `json:"recipientId"`
	ActorID      string `json:"actorId"`
	Content      string `json:"content,omitempty"`
	SentAt       string `json:"sentAt"`
}
