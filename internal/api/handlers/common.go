package handlers

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errNoUser = errors.New("no user in request context")

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoUser
	}
	return userID, nil
}

// refreshAlerts regenerates the user's alerts in the background after a
// data mutation. The request never waits on it; clients re-query the alert
// list to observe results.
func refreshAlerts(alertService *service.AlertService, userID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		alertService.GenerateAlerts(ctx, userID)
	}()
}
