package res

type MessageResponse struct {
	MessageId      string  `json:"messageId"`
	RoomId         string  `json:"roomId"`
	SenderId       string  `json:"senderId"`
	Content        string  `json:"content"`
	AttachmentRef  *string `json:"attachmentRef,omitempty"`
	SequenceNumber int64   `json:"sequenceNumber"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
}

type HistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	HasMore  bool              `json:"hasMore"`
}

type ReceiptResponse struct {
	MessageId string `json:"messageId"`
	ReaderId  string `json:"readerId"`
	ReadAt    string `json:"readAt"`
}

// MarkReadResponse reports Recorded=false when the reader authored the message.
type MarkReadResponse struct {
	Recorded bool             `json:"recorded"`
	Receipt  *ReceiptResponse `json:"receipt,omitempty"`
}
