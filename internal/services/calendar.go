package services

import (
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
)

// MonthView is the prepared calendar month: the week grid, the appointments
// bucketed by day of month, and the navigation targets. Building it never
// mutates anything.
type MonthView struct {
	Year      int
	Month     int
	MonthName string

	// Weeks are rows of seven day-of-month values starting on Monday; zero
	// marks a cell that belongs to an adjacent month.
	Weeks [][]int

	// AppointmentsByDay preserves ascending start order within each day.
	AppointmentsByDay map[int][]models.Appointment

	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int
}

// NormalizeMonth substitutes the current real-world month when the requested
// month is outside 1..12. The requested year is kept; out-of-range months are
// a navigation glitch, not an error.
func NormalizeMonth(year int, month int, now time.Time) (int, int) {
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, month
}

// MonthBounds returns the first instant of the month and the first instant of
// the following month, rolling the year at December.
func MonthBounds(year int, month int, location *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 1, 0)
}

// MonthGrid lays the month out as Monday-first weeks of seven day numbers,
// with zero for cells outside the month.
func MonthGrid(year int, month int) [][]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Go counts weekdays from Sunday; shift so Monday is column zero.
	leadingBlanks := (int(first.Weekday()) + 6) % 7

	weeks := make([][]int, 0, 6)
	week := make([]int, 0, 7)
	for i := 0; i < leadingBlanks; i++ {
		week = append(week, 0)
	}
	for day := 1; day <= daysInMonth; day++ {
		week = append(week, day)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]int, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, 0)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// AdjacentMonths computes the previous and next (year, month) navigation
// pairs, rolling the year at the January and December boundaries.
func AdjacentMonths(year int, month int) (prevYear int, prevMonth int, nextYear int, nextMonth int) {
	prevYear, prevMonth = year, month-1
	if month == 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth = year, month+1
	if month == 12 {
		nextYear, nextMonth = year+1, 1
	}
	return prevYear, prevMonth, nextYear, nextMonth
}

// BucketAppointmentsByDay groups appointments by day of month. Insertion
// order within a day follows the input order, so callers passing a
// start-ascending list get start-ascending buckets.
func BucketAppointmentsByDay(appointments []models.Appointment) map[int][]models.Appointment {
	buckets := make(map[int][]models.Appointment)
	for _, appointment := range appointments {
		day := appointment.StartAt.Day()
		buckets[day] = append(buckets[day], appointment)
	}
	return buckets
}

// BuildMonthView assembles the full month view from an already-scoped,
// start-ascending appointment list.
func BuildMonthView(year int, month int, appointments []models.Appointment) MonthView {
	prevYear, prevMonth, nextYear, nextMonth := AdjacentMonths(year, month)
	return MonthView{
		Year:              year,
		Month:             month,
		MonthName:         time.Month(month).String(),
		Weeks:             MonthGrid(year, month),
		AppointmentsByDay: BucketAppointmentsByDay(appointments),
		PrevYear:          prevYear,
		PrevMonth:         prevMonth,
		NextYear:          nextYear,
		NextMonth:         nextMonth,
	}
}
