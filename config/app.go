package config

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/shuchit-srx/stoory-backend-sub003/config/logger"
	"github.com/shuchit-srx/stoory-backend-sub003/handler"
	"github.com/shuchit-srx/stoory-backend-sub003/middleware"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"github.com/shuchit-srx/stoory-backend-sub003/routes"
	"github.com/shuchit-srx/stoory-backend-sub003/safety"
	"github.com/shuchit-srx/stoory-backend-sub003/security"
	"github.com/shuchit-srx/stoory-backend-sub003/usecase"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppConfig struct {
	App        *fiber.App
	Validate   *validator.Validate
	Logger     *logrus.Logger
	AppLogger  *logger.AppLogger
	DB         *gorm.DB
	Bridge     Bridge
	Middleware *middleware.Middleware
	Notify     common.NotificationConfig
}

func RunServer() {
	newConfig := common.NewViper()
	log := NewLogger(newConfig)
	appLogger := logger.NewAppLogger("logs")
	app := NewFiber(newConfig, log)
	newDB := NewDB(newConfig, appLogger)
	defer newDB.Close()
	bridge, closeBridge := NewBridge(newConfig, log)
	defer closeBridge()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)
	server := newConfig.GetServerConfig()

	app.Use(cors.New(cors.Config{
		AllowOrigins: server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Internal-Token",
	}))
	app.Use(middleware.RequestTimeout(server.RequestTimeout))

	notifier := App(&AppConfig{
		App:        app,
		Validate:   NewValidator(),
		Logger:     log,
		AppLogger:  appLogger,
		DB:         newDB.GetDB(),
		Bridge:     bridge,
		Middleware: newMiddleware,
		Notify:     newConfig.GetNotificationConfig(),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	if err := app.Listen(":" + server.Port); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
	notifier.Wait()
	log.Info("Server stopped")
}

// App wires repositories, usecases and handlers onto aC.App and returns the
// notifier so the caller can drain it on shutdown.
func App(aC *AppConfig) *usecase.Notifier {
	roomRepository := repository.NewChatRoomRepository()
	messageRepository := repository.NewMessageRepository()
	receiptRepository := repository.NewReadReceiptRepository()
	directory := repository.NewEngagementRepository(aC.DB)
	ledger := repository.NewPaymentRepository(aC.DB)

	notifier := usecase.NewNotifier(aC.Bridge, aC.Logger, aC.Notify.DispatchTimeout)
	accessUsecase := usecase.NewAccessUsecase(directory, aC.Logger)
	chatUsecase := usecase.NewChatUsecase(roomRepository, messageRepository, accessUsecase, directory, ledger, notifier, aC.Logger, aC.DB)
	messageUsecase := usecase.NewMessageUsecase(roomRepository, messageRepository, accessUsecase, safety.NewFilter(), notifier, aC.Logger, aC.DB)
	receiptUsecase := usecase.NewReadReceiptUsecase(receiptRepository, messageRepository, accessUsecase, aC.Logger, aC.DB)

	hub := handler.NewHub(aC.Logger)
	chatHandler := handler.NewChatHandler(chatUsecase, accessUsecase, hub, aC.Logger)
	messageHandler := handler.NewMessageHandler(messageUsecase, receiptUsecase, accessUsecase, hub, aC.Validate, aC.Logger)
	wsHandler := handler.NewWebSocketHandler(messageUsecase, receiptUsecase, accessUsecase, aC.Bridge, hub, aC.Validate, aC.AppLogger)

	route := routes.ConfigRoute{
		App:              aC.App,
		Middleware:       aC.Middleware,
		ChatHandler:      chatHandler,
		MessageHandler:   messageHandler,
		WebSocketHandler: wsHandler,
		Health:           healthCheck(aC.DB),
		Metrics:          adaptor.HTTPHandler(promhttp.Handler()),
	}
	route.GetRoute()
	return notifier
}

func healthCheck(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conn, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			err = conn.PingContext(ctx)
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
