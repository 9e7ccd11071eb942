package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/sirupsen/logrus"
)

const (
	supportMessage     = "Conversation data is inconsistent, please contact support"
	unavailableMessage = "Service temporarily unavailable"
)

// StatusOf maps an error kind to the HTTP status the API answers with.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindAccessDenied:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidState:
		return fiber.StatusConflict
	case apperror.KindPaymentNotVerified:
		return fiber.StatusPaymentRequired
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindDataIntegrity:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusServiceUnavailable
	}
}

// NewErrorHandler renders every error returned by a handler as an
// ErrorResponse. Downstream details are logged, never returned.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(res.ErrorResponse{
				Status:     utils.StatusMessage(fiberErr.Code),
				StatusCode: fiberErr.Code,
				Error:      fiberErr.Message,
			})
		}

		kind := apperror.KindOf(err)
		status := StatusOf(kind)
		message := publicMessage(err)
		switch kind {
		case apperror.KindDataIntegrity:
			log.WithError(err).WithField("path", c.Path()).Error("Data integrity violation")
		case apperror.KindDownstream:
			log.WithError(err).WithField("path", c.Path()).Error("Downstream failure")
		}

		return c.Status(status).JSON(res.ErrorResponse{
			Status:     utils.StatusMessage(status),
			StatusCode: status,
			Code:       string(kind),
			Error:      message,
		})
	}
}

func publicMessage(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindDataIntegrity:
		return supportMessage
	case apperror.KindDownstream:
		return unavailableMessage
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return string(apperror.KindOf(err))
}
