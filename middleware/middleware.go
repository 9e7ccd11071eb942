package middleware

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/security"
	"github.com/sirupsen/logrus"
)

const (
	UserIDKey         = "user_id"
	jwtContextKey     = "jwt"
	InternalTokenName = "X-Internal-Token"
)

type Middleware struct {
	*common.Config
	*security.JWT
	Log     *logrus.Logger
	protect fiber.Handler
}

func NewMiddleware(config *common.Config, token *security.JWT, logger *logrus.Logger) *Middleware {
	middleware := &Middleware{Config: config, JWT: token, Log: logger}
	middleware.protect = jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS512.Alg(), Key: config.GetJwtConfig()},
		ContextKey: jwtContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Log.WithError(err).Warn("Failed to validate JWT")
			return unauthorized(c, "Token is not valid")
		},
	})
	return middleware
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(res.ErrorResponse{
		Status:     fiber.ErrUnauthorized.Message,
		StatusCode: fiber.StatusUnauthorized,
		Error:      message,
	})
}

func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	return middleware.protect(c)
}

// ExtractUserID copies the verified token's user id into Locals. It must
// run after JWTProtected.
func (middleware *Middleware) ExtractUserID(c *fiber.Ctx) error {
	token, ok := c.Locals(jwtContextKey).(*jwt.Token)
	if !ok {
		return unauthorized(c, "Token is not valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c, "Token is not valid")
	}
	userID, err := security.UserIDFromClaims(claims)
	if err != nil {
		middleware.Log.WithError(err).Warn("Failed to extract user ID from token")
		return unauthorized(c, "Failed to extract user ID from token")
	}

	c.Locals(UserIDKey, userID)
	return c.Next()
}

// WebSocketAuth accepts the token from the Authorization header or, since
// browsers cannot set headers on upgrade requests, from the token query.
func (middleware *Middleware) WebSocketAuth(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return unauthorized(c, "Missing token")
	}

	userID, err := middleware.JWT.GetUserIdFromToken(token)
	if err != nil {
		middleware.Log.WithError(err).Warn("Failed to validate websocket token")
		return unauthorized(c, "Token is not valid")
	}
	c.Locals(UserIDKey, userID)
	return c.Next()
}

// InternalOnly guards service-to-service routes with the shared token. An
// unset token closes the route entirely.
func (middleware *Middleware) InternalOnly(c *fiber.Ctx) error {
	expected := middleware.GetInternalToken()
	given := c.Get(InternalTokenName)
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
		middleware.Log.WithField("path", c.Path()).Warn("Rejected internal call")
		return c.Status(fiber.StatusForbidden).JSON(res.ErrorResponse{
			Status:     fiber.ErrForbidden.Message,
			StatusCode: fiber.StatusForbidden,
			Error:      "Internal token is not valid",
		})
	}
	return c.Next()
}

// RequestTimeout bounds the user context every usecase call receives.
func RequestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// UserID reads the id stored by ExtractUserID or WebSocketAuth.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
