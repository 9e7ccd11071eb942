package req

type SendMessageRequest struct {
	Content       string  `json:"content" validate:"required"`
	AttachmentRef *string `json:"attachmentRef,omitempty" validate:"omitempty,max=512"`
}

// HistoryRequest holds the raw pagination query; zero values take defaults.
type HistoryRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
