package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/shuchit-srx/stoory-backend-sub003/handler"
	"github.com/shuchit-srx/stoory-backend-sub003/middleware"
)

type ConfigRoute struct {
	App              *fiber.App
	Middleware       *middleware.Middleware
	ChatHandler      *handler.ChatHandler
	MessageHandler   *handler.MessageHandler
	WebSocketHandler *handler.WebSocketHandler
	Health           fiber.Handler
	Metrics          fiber.Handler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetInternalRoute()
	rc.GetProtectedRoute()
	if rc.WebSocketHandler != nil {
		rc.GetWebSocketRoute()
	}
}

func (rc *ConfigRoute) GetPublicRoute() {
	if rc.Health != nil {
		rc.App.Get("/healthz", rc.Health)
	}
	if rc.Metrics != nil {
		rc.App.Get("/metrics", rc.Metrics)
	}
}

// GetInternalRoute is called by the payment service, not by users.
func (rc *ConfigRoute) GetInternalRoute() {
	app := rc.App.Group("/api/v1/internal", rc.Middleware.InternalOnly)
	app.Post("/engagements/:engagementId/room", rc.ChatHandler.CreateRoomInternal)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1", rc.Middleware.JWTProtected, rc.Middleware.ExtractUserID)

	app.Get("/rooms", rc.ChatHandler.GetUserRooms)

	app.Post("/engagements/:engagementId/room", rc.ChatHandler.CreateRoom)
	app.Get("/engagements/:engagementId/room", rc.ChatHandler.GetRoom)
	app.Post("/engagements/:engagementId/room/close", rc.ChatHandler.CloseRoom)

	app.Post("/engagements/:engagementId/messages", rc.MessageHandler.SendMessage)
	app.Get("/engagements/:engagementId/messages", rc.MessageHandler.GetHistory)

	app.Post("/messages/:messageId/read", rc.MessageHandler.MarkRead)
	app.Get("/messages/:messageId/receipts", rc.MessageHandler.GetReceipts)
}

func (rc *ConfigRoute) GetWebSocketRoute() {
	rc.App.Get("/ws",
		rc.Middleware.WebSocketAuth,
		rc.WebSocketHandler.Upgrade,
		websocket.New(rc.WebSocketHandler.HandleWebSocket),
	)
}
