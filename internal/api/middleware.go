package api

import (
	"github.com/erickreynosop/scheduleassistant/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName  = "schedassist_auth"
	flashCookieName = "schedassist_flash"
	contextUserKey  = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
