package handler

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/config/logger"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/req"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/middleware"
	"github.com/shuchit-srx/stoory-backend-sub003/usecase"
)

const (
	engagementIDKey = "engagement_id"
	frameTimeout    = 10 * time.Second
)

// Presence is refreshed while a participant holds a room connection.
type Presence interface {
	Touch(ctx context.Context, userID, engagementID string) error
	Clear(ctx context.Context, userID, engagementID string) error
}

type WebSocketHandler struct {
	Messages usecase.MessageUsecase
	Receipts usecase.ReadReceiptUsecase
	Access   usecase.AccessUsecase
	Presence Presence
	Hub      *Hub
	Validate *validator.Validate
	Log      *logger.AppLogger
}

func NewWebSocketHandler(
	messages usecase.MessageUsecase,
	receipts usecase.ReadReceiptUsecase,
	access usecase.AccessUsecase,
	presence Presence,
	hub *Hub,
	validate *validator.Validate,
	log *logger.AppLogger,
) *WebSocketHandler {
	return &WebSocketHandler{
		Messages: messages,
		Receipts: receipts,
		Access:   access,
		Presence: presence,
		Hub:      hub,
		Validate: validate,
		Log:      log,
	}
}

// Upgrade runs before the websocket upgrade: the caller must already be
// authenticated and must be a participant of the requested engagement.
func (handler *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	engagementID := c.Query("engagementId")
	if engagementID == "" {
		return apperror.Validation("engagementId is required")
	}
	if _, err := handler.Access.RequireAccess(c.UserContext(), middleware.UserID(c), engagementID); err != nil {
		return err
	}
	c.Locals(engagementIDKey, engagementID)
	return c.Next()
}

func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	engagementID, _ := c.Locals(engagementIDKey).(string)
	wsLog := handler.Log.WS

	handler.Hub.Register(engagementID, userID, c)
	handler.touch(userID, engagementID)
	wsLog.Info.Info().Str("engagementId", engagementID).Str("userId", userID).Msg("joined chat room")

	defer func() {
		handler.Hub.Remove(engagementID, c)
		ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
		defer cancel()
		if err := handler.Presence.Clear(ctx, userID, engagementID); err != nil {
			wsLog.Warning.Warn().Err(err).Str("userId", userID).Msg("failed to clear presence")
		}
		_ = c.Close()
		wsLog.Info.Info().Str("engagementId", engagementID).Str("userId", userID).Msg("left chat room")
	}()

	for {
		var frame req.SocketFrame
		if err := c.ReadJSON(&frame); err != nil {
			wsLog.Trace.Debug().Err(err).Str("userId", userID).Msg("read loop ended")
			return
		}
		handler.touch(userID, engagementID)

		if err := handler.handleFrame(engagementID, userID, frame); err != nil {
			wsLog.Warning.Warn().Err(err).Str("frame", frame.Type).Str("userId", userID).Msg("frame rejected")
			handler.Hub.writeTo(engagementID, c, res.SocketError{
				Event: "error",
				Code:  string(apperror.KindOf(err)),
				Error: publicMessage(err),
			})
		}
	}
}

func (handler *WebSocketHandler) handleFrame(engagementID, userID string, frame req.SocketFrame) error {
	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	switch frame.Type {
	case req.FramePing:
		return nil
	case req.FrameMessage:
		request := req.SendMessageRequest{Content: frame.Content, AttachmentRef: frame.AttachmentRef}
		if err := handler.Validate.Struct(&request); err != nil {
			return apperror.Validation("%s", validationMessage(err))
		}
		message, err := handler.Messages.SendMessage(ctx, userID, engagementID, frame.Content, frame.AttachmentRef)
		if err != nil {
			return err
		}
		if handler.Hub.Broadcast(engagementID, userID, NewMessageBroadcast(engagementID, *message)) {
			if _, err := handler.Messages.MarkDelivered(ctx, message.ID); err != nil {
				handler.Log.WS.Warning.Warn().Err(err).Str("messageId", message.ID).Msg("failed to mark delivered")
			}
		}
		return nil
	case req.FrameRead:
		message, err := handler.Messages.GetMessage(ctx, frame.MessageID)
		if err != nil {
			return err
		}
		if message.Room.EngagementID != engagementID {
			return apperror.AccessDenied("message %s is not in this room", frame.MessageID)
		}
		receipt, err := handler.Receipts.MarkRead(ctx, message.ID, userID)
		if err != nil || receipt == nil {
			return err
		}
		handler.Hub.Broadcast(engagementID, userID, NewReadBroadcast(engagementID, *message, *receipt))
		return nil
	default:
		return apperror.Validation("unknown frame type %q", frame.Type)
	}
}

func (handler *WebSocketHandler) touch(userID, engagementID string) {
	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()
	if err := handler.Presence.Touch(ctx, userID, engagementID); err != nil {
		handler.Log.WS.Warning.Warn().Err(err).Str("userId", userID).Msg("failed to refresh presence")
	}
}
