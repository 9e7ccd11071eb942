package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/shuchit-srx/stoory-backend-sub003/handler"
	"github.com/sirupsen/logrus"
)

func NewFiber(cfg *common.Config, log *logrus.Logger) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		ErrorHandler:  handler.NewErrorHandler(log),
	})
}
