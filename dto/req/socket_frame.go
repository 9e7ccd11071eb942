package req

const (
	FrameMessage = "message"
	FrameRead    = "read"
	FramePing    = "ping"
)

// SocketFrame is what a client sends over a room connection.
type SocketFrame struct {
	Type          string  `json:"type"`
	Content       string  `json:"content,omitempty"`
	AttachmentRef *string `json:"attachmentRef,omitempty"`
	MessageID     string  `json:"messageId,omitempty"`
}
