package dto

const (
	EventMessageCreated = "message.created"
	EventMessageRead    = "message.read"
	EventRoomClosed     = "room.closed"
)

// BroadcastMessage is pushed to every websocket connection of a room.
type BroadcastMessage struct {
	Event          string `json:"event"`
	EngagementID   string `json:"engagementId"`
	RoomID         string `json:"roomId,omitempty"`
	MessageID      string `json:"messageId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	Content        string `json:"content,omitempty"`
	AttachmentRef  string `json:"attachmentRef,omitempty"`
	SequenceNumber int64  `json:"sequenceNumber,omitempty"`
	Status         string `json:"status,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
