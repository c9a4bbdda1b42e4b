package api

import (
	"errors"

	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowNewAppointment(c *fiber.Ctx) error {
	return handler.render(c, "create_appointment", fiber.Map{
		"Title": "Schedule Assistant | Book an Appointment",
	})
}

func (handler *Handler) CreateAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}

	selectedServices := formValues(c, "services")
	specialRequest := c.FormValue("special_request")
	dateRaw := c.FormValue("date")
	timeRaw := c.FormValue("time")

	if len(services.MergeServiceSelection(selectedServices, specialRequest)) == 0 {
		return handler.redirectWithNotice(c, "/appointments/new", "Please select at least one service.")
	}

	_, err := handler.bookings.Create(user.ID, selectedServices, specialRequest, dateRaw, timeRaw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return handler.redirectWithNotice(c, "/appointments/new", "Invalid date or time format.")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("failed to create appointment")
	}

	return handler.redirectWithNotice(c, "/main", "Appointment created!")
}

func (handler *Handler) ListAppointments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}

	appointments, err := handler.bookings.ListForOwner(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load appointments")
	}

	return handler.render(c, "appointments", fiber.Map{
		"Title":        "Schedule Assistant | My Appointments",
		"Appointments": appointments,
	})
}

// CancelAppointment is the customer's own soft cancel. A missing appointment
// and someone else's appointment produce the same message.
func (handler *Handler) CancelAppointment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil || appointmentID <= 0 {
		return handler.redirectWithNotice(c, "/appointments", "Appointment not found.")
	}

	_, alreadyCanceled, err := handler.bookings.SoftCancel(uint(appointmentID), user.ID, user.Role)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return handler.redirectWithNotice(c, "/appointments", "Appointment not found.")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("failed to cancel appointment")
	}
	if alreadyCanceled {
		return handler.redirectWithNotice(c, "/appointments", "This appointment is already canceled.")
	}
	return handler.redirectWithNotice(c, "/appointments", "Appointment canceled.")
}

// formValues returns every submitted value for one form field, since a
// booking can select multiple services.
func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Request().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		values = append(values, string(value))
	}
	return values
}
