package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) redirectWithNotice(c *fiber.Ctx, path string, notice string) error {
	handler.setFlashCookie(c, FlashPayload{Notice: notice})
	return c.Redirect(path, fiber.StatusSeeOther)
}

func (handler *Handler) redirectWithFlash(c *fiber.Ctx, path string, payload FlashPayload) error {
	handler.setFlashCookie(c, payload)
	return c.Redirect(path, fiber.StatusSeeOther)
}

func currentCalendarPath(now time.Time) string {
	return calendarPath(now.Year(), int(now.Month()))
}

func calendarPath(year int, month int) string {
	return fmt.Sprintf("/calendar?year=%d&month=%d", year, month)
}
