package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RestrictFromBoss keeps the calendar-only boss role out of the customer
// flows (registration, booking, personal listings). An authenticated boss is
// soft-redirected to the current month's calendar; everyone else passes
// through untouched, authenticated or not.
func (handler *Handler) RestrictFromBoss(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err == nil && user.Role.CanSeeAllAppointments() {
		return c.Redirect(currentCalendarPath(time.Now().In(handler.location)), fiber.StatusSeeOther)
	}
	return c.Next()
}
