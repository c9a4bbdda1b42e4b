package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Boss-only actions check authentication and role inside the handler and
// answer failures with a flash redirect, never an HTTP error page.

func (handler *Handler) DeleteAppointment(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}
	if !user.Role.CanSeeAllAppointments() {
		return handler.redirectWithNotice(c, "/", "Unauthorized.")
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil || appointmentID <= 0 {
		return handler.redirectWithNotice(c, "/calendar", "Appointment not found.")
	}

	if err := handler.bookings.HardDelete(uint(appointmentID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return handler.redirectWithNotice(c, "/calendar", "Appointment not found.")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("failed to delete appointment")
	}
	return handler.redirectWithNotice(c, "/calendar", "Appointment permanently deleted.")
}

// BossCancelAppointment soft-cancels any appointment and then attempts an
// SMS notification to its owner. The cancellation is committed before the
// send, so a slow or failing transport can only cost the notification.
func (handler *Handler) BossCancelAppointment(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil || !user.Role.CanSeeAllAppointments() {
		return handler.redirectWithNotice(c, "/", "Unauthorized.")
	}

	returnPath := bossCancelReturnPath(c)

	appointmentID, err := c.ParamsInt("id")
	if err != nil || appointmentID <= 0 {
		return handler.redirectWithNotice(c, returnPath, "Appointment not found.")
	}

	appointment, alreadyCanceled, err := handler.bookings.SoftCancel(uint(appointmentID), user.ID, models.RoleBoss)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return handler.redirectWithNotice(c, returnPath, "Appointment not found.")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("failed to cancel appointment")
	}
	if alreadyCanceled {
		return handler.redirectWithNotice(c, returnPath, "This appointment was already canceled.")
	}

	owner, err := handler.repositories.Users.FindByID(appointment.UserID)
	sent := false
	if err == nil {
		sent = handler.sms.Send(owner.Phone, services.CancellationSMSBody(owner.FullName, appointment.StartAt))
	}
	if !sent {
		return handler.redirectWithFlash(c, returnPath, FlashPayload{
			Warning: "Appointment canceled, but SMS notification could not be sent (check Twilio config or phone).",
		})
	}
	return handler.redirectWithNotice(c, returnPath, "Appointment canceled.")
}

// bossCancelReturnPath keeps the boss on the month they were viewing.
func bossCancelReturnPath(c *fiber.Ctx) string {
	yearRaw := strings.TrimSpace(c.Query("year"))
	monthRaw := strings.TrimSpace(c.Query("month"))
	if yearRaw == "" || monthRaw == "" {
		return "/calendar"
	}
	year, yearErr := strconv.Atoi(yearRaw)
	month, monthErr := strconv.Atoi(monthRaw)
	if yearErr != nil || monthErr != nil {
		return "/calendar"
	}
	return calendarPath(year, month)
}
