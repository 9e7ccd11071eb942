package res

type RoomResponse struct {
	RoomId          string `json:"roomId"`
	EngagementId    string `json:"engagementId"`
	Status          string `json:"status"`
	SequenceCounter int64  `json:"sequenceCounter"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

type RoomSummary struct {
	RoomResponse
	CounterpartId string           `json:"counterpartId"`
	LastMessage   *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount   int64            `json:"unreadCount"`
}
