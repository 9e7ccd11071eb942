package res

import (
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
)

const TimeLayout = time.RFC3339

func NewRoomResponse(room entity.ChatRoom) RoomResponse {
	return RoomResponse{
		RoomId:          room.ID,
		EngagementId:    room.EngagementID,
		Status:          string(room.Status),
		SequenceCounter: room.SequenceCounter,
		CreatedAt:       room.CreatedAt.Format(TimeLayout),
		UpdatedAt:       room.UpdatedAt.Format(TimeLayout),
	}
}

func NewMessageResponse(msg entity.Message) MessageResponse {
	return MessageResponse{
		MessageId:      msg.ID,
		RoomId:         msg.RoomID,
		SenderId:       msg.SenderID,
		Content:        msg.Content,
		AttachmentRef:  msg.AttachmentRef,
		SequenceNumber: msg.SequenceNumber,
		Status:         string(msg.Status),
		CreatedAt:      msg.CreatedAt.Format(TimeLayout),
	}
}

func NewMessageResponses(msgs []entity.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		responses = append(responses, NewMessageResponse(msg))
	}
	return responses
}

func NewReceiptResponse(receipt entity.MessageReadReceipt) ReceiptResponse {
	return ReceiptResponse{
		MessageId: receipt.MessageID,
		ReaderId:  receipt.ReaderID,
		ReadAt:    receipt.ReadAt.Format(TimeLayout),
	}
}
