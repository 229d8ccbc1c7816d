package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session keys written at login and read back by handlers.
const (
	SessionUserIDKey = "user_id"
	SessionEmailKey  = "email"
)

// RequireSession gates a route on an authenticated session. The owner's id is
// stored in c.Locals("userID") for handlers downstream.
func RequireSession(store *session.Store, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			logger.Error("Session lookup failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		rawID, _ := sess.Get(SessionUserIDKey).(string)
		if rawID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			logger.Warn("Malformed user id in session", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
