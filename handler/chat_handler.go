package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/middleware"
	"github.com/shuchit-srx/stoory-backend-sub003/usecase"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	Chats  usecase.ChatUsecase
	Access usecase.AccessUsecase
	Hub    *Hub
	*logrus.Logger
}

func NewChatHandler(chats usecase.ChatUsecase, access usecase.AccessUsecase, hub *Hub, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		Chats:  chats,
		Access: access,
		Hub:    hub,
		Logger: logger,
	}
}

// CreateRoom lets a participant open the room once the engagement is paid.
func (handler *ChatHandler) CreateRoom(c *fiber.Ctx) error {
	ctx := c.UserContext()
	engagementID := c.Params("engagementId")

	if _, err := handler.Access.RequireAccess(ctx, middleware.UserID(c), engagementID); err != nil {
		return err
	}
	room, err := handler.Chats.CreateRoom(ctx, engagementID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.RoomResponse]{
		Message:    "Chat room ready",
		StatusCode: fiber.StatusOK,
		Data:       res.NewRoomResponse(*room),
	})
}

// CreateRoomInternal is called by the payment service once a payment
// covering the engagement is verified.
func (handler *ChatHandler) CreateRoomInternal(c *fiber.Ctx) error {
	room, err := handler.Chats.CreateRoom(c.UserContext(), c.Params("engagementId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.RoomResponse]{
		Message:    "Chat room ready",
		StatusCode: fiber.StatusOK,
		Data:       res.NewRoomResponse(*room),
	})
}

func (handler *ChatHandler) GetRoom(c *fiber.Ctx) error {
	room, err := handler.Chats.GetRoom(c.UserContext(), middleware.UserID(c), c.Params("engagementId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.RoomResponse]{
		Message:    "Successfully to Get Chat Room",
		StatusCode: fiber.StatusOK,
		Data:       res.NewRoomResponse(*room),
	})
}

func (handler *ChatHandler) CloseRoom(c *fiber.Ctx) error {
	engagementID := c.Params("engagementId")
	userID := middleware.UserID(c)

	room, err := handler.Chats.CloseRoom(c.UserContext(), engagementID, userID)
	if err != nil {
		return err
	}

	handler.Hub.Broadcast(engagementID, userID, dto.BroadcastMessage{
		Event:        dto.EventRoomClosed,
		EngagementID: engagementID,
		RoomID:       room.ID,
		SenderID:     userID,
		Status:       string(room.Status),
		CreatedAt:    time.Now().UTC().Format(res.TimeLayout),
	})

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.RoomResponse]{
		Message:    "Chat room closed",
		StatusCode: fiber.StatusOK,
		Data:       res.NewRoomResponse(*room),
	})
}

func (handler *ChatHandler) GetUserRooms(c *fiber.Ctx) error {
	rooms, err := handler.Chats.GetUserRooms(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.RoomSummary]{
		Message:    "Successfully to Get All Chats",
		StatusCode: fiber.StatusOK,
		Data:       rooms,
	})
}
