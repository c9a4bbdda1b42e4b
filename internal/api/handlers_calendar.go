package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}

	now := time.Now().In(handler.location)
	year, month := resolveCalendarMonth(c.Query("year"), c.Query("month"), now)

	monthStart, monthEnd := services.MonthBounds(year, month, handler.location)
	scope := services.ScopeForUser(user)
	appointments, err := handler.bookings.ListInRange(monthStart, monthEnd, scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load calendar")
	}

	view := services.BuildMonthView(year, month, appointments)
	return handler.render(c, "calendar", fiber.Map{
		"Title":             "Schedule Assistant | Calendar",
		"Year":              view.Year,
		"Month":             view.Month,
		"MonthName":         view.MonthName,
		"Weeks":             view.Weeks,
		"AppointmentsByDay": view.AppointmentsByDay,
		"PrevYear":          view.PrevYear,
		"PrevMonth":         view.PrevMonth,
		"NextYear":          view.NextYear,
		"NextMonth":         view.NextMonth,
		"IsBoss":            user.Role.CanSeeAllAppointments(),
	})
}

// resolveCalendarMonth parses the navigation query, falling back to the
// current year/month on unparseable values and normalizing out-of-range
// months to the current month.
func resolveCalendarMonth(yearRaw string, monthRaw string, now time.Time) (int, int) {
	year := now.Year()
	month := int(now.Month())

	if value := strings.TrimSpace(yearRaw); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			year = parsed
		}
	}
	if value := strings.TrimSpace(monthRaw); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			month = parsed
		}
	}

	return services.NormalizeMonth(year, month, now)
}
