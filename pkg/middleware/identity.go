package middleware

import (
	"strings"

	"fintrack/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityMiddleware resolves the acting user. Requests with a valid
// bearer token act as that user; everything else acts as the configured
// demo user. The demo identity is injected here explicitly rather than
// read from ambient state, so every handler sees a concrete user ID.
func IdentityMiddleware(jwtManager *auth.JWTManager, demoUserID uuid.UUID, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			c.Locals("userID", demoUserID)
			return c.Next()
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			logger.Warn("Malformed user ID in token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
