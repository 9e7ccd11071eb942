package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/req"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/middleware"
	"github.com/shuchit-srx/stoory-backend-sub003/usecase"
	"github.com/sirupsen/logrus"
)

type MessageHandler struct {
	Messages usecase.MessageUsecase
	Receipts usecase.ReadReceiptUsecase
	Access   usecase.AccessUsecase
	Hub      *Hub
	Validate *validator.Validate
	*logrus.Logger
}

func NewMessageHandler(
	messages usecase.MessageUsecase,
	receipts usecase.ReadReceiptUsecase,
	access usecase.AccessUsecase,
	hub *Hub,
	validate *validator.Validate,
	logger *logrus.Logger,
) *MessageHandler {
	return &MessageHandler{
		Messages: messages,
		Receipts: receipts,
		Access:   access,
		Hub:      hub,
		Validate: validate,
		Logger:   logger,
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}

func (handler *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var request req.SendMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := handler.Validate.Struct(&request); err != nil {
		return apperror.Validation("%s", validationMessage(err))
	}

	engagementID := c.Params("engagementId")
	senderID := middleware.UserID(c)
	message, err := handler.Messages.SendMessage(c.UserContext(), senderID, engagementID, request.Content, request.AttachmentRef)
	if err != nil {
		return err
	}

	handler.push(c, engagementID, message)

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Message sent",
		StatusCode: fiber.StatusCreated,
		Data:       res.NewMessageResponse(*message),
	})
}

// push broadcasts a stored message to the room and marks it delivered when
// the counterpart has a live connection.
func (handler *MessageHandler) push(c *fiber.Ctx, engagementID string, message *entity.Message) {
	if handler.Hub == nil {
		return
	}
	if !handler.Hub.Broadcast(engagementID, message.SenderID, NewMessageBroadcast(engagementID, *message)) {
		return
	}
	delivered, err := handler.Messages.MarkDelivered(c.UserContext(), message.ID)
	if err != nil {
		handler.Logger.WithError(err).WithField("messageId", message.ID).Warn("Failed to mark message delivered")
		return
	}
	if delivered {
		message.Status = enum.MessageStatusDelivered
	}
}

func (handler *MessageHandler) GetHistory(c *fiber.Ctx) error {
	var request req.HistoryRequest
	if err := c.QueryParser(&request); err != nil {
		return apperror.Validation("limit and offset must be integers")
	}

	ctx := c.UserContext()
	engagementID := c.Params("engagementId")
	if _, err := handler.Access.RequireAccess(ctx, middleware.UserID(c), engagementID); err != nil {
		return err
	}

	history, err := handler.Messages.GetHistory(ctx, engagementID, request.Limit, request.Offset)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.HistoryResponse]{
		Message:    "Successfully to Get Messages",
		StatusCode: fiber.StatusOK,
		Data:       history,
	})
}

func (handler *MessageHandler) MarkRead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	readerID := middleware.UserID(c)

	receipt, err := handler.Receipts.MarkRead(ctx, c.Params("messageId"), readerID)
	if err != nil {
		return err
	}

	response := res.MarkReadResponse{Recorded: receipt != nil}
	if receipt != nil {
		receiptResponse := res.NewReceiptResponse(*receipt)
		response.Receipt = &receiptResponse
		handler.pushRead(receipt)
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.MarkReadResponse]{
		Message:    "Read receipt recorded",
		StatusCode: fiber.StatusOK,
		Data:       response,
	})
}

func (handler *MessageHandler) pushRead(receipt *entity.MessageReadReceipt) {
	if handler.Hub == nil {
		return
	}
	engagementID := receipt.Message.Room.EngagementID
	handler.Hub.Broadcast(engagementID, receipt.ReaderID, NewReadBroadcast(engagementID, receipt.Message, *receipt))
}

// GetReceipts is open to both participants of the message's engagement.
func (handler *MessageHandler) GetReceipts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	messageID := c.Params("messageId")

	message, err := handler.Messages.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := handler.Access.RequireAccess(ctx, middleware.UserID(c), message.Room.EngagementID); err != nil {
		return err
	}

	receipts, err := handler.Receipts.GetReceipts(ctx, messageID)
	if err != nil {
		return err
	}
	responses := make([]res.ReceiptResponse, 0, len(receipts))
	for _, receipt := range receipts {
		responses = append(responses, res.NewReceiptResponse(receipt))
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.ReceiptResponse]{
		Message:    "Successfully to Get Read Receipts",
		StatusCode: fiber.StatusOK,
		Data:       responses,
	})
}

func NewMessageBroadcast(engagementID string, message entity.Message) dto.BroadcastMessage {
	broadcast := dto.BroadcastMessage{
		Event:          dto.EventMessageCreated,
		EngagementID:   engagementID,
		RoomID:         message.RoomID,
		MessageID:      message.ID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		SequenceNumber: message.SequenceNumber,
		Status:         string(message.Status),
		CreatedAt:      message.CreatedAt.Format(res.TimeLayout),
	}
	if message.AttachmentRef != nil {
		broadcast.AttachmentRef = *message.AttachmentRef
	}
	return broadcast
}

func NewReadBroadcast(engagementID string, message entity.Message, receipt entity.MessageReadReceipt) dto.BroadcastMessage {
	return dto.BroadcastMessage{
		Event:          dto.EventMessageRead,
		EngagementID:   engagementID,
		RoomID:         message.RoomID,
		MessageID:      message.ID,
		SenderID:       receipt.ReaderID,
		SequenceNumber: message.SequenceNumber,
		Status:         string(enum.MessageStatusRead),
		CreatedAt:      receipt.ReadAt.Format(res.TimeLayout),
	}
}
