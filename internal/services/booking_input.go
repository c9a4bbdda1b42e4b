package services

import (
	"strings"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
)

const (
	bookingDateLayout    = "2006-01-02"
	bookingTimeLayout    = "15:04"
	specialRequestPrefix = "Special Request: "
	serviceListSeparator = ", "
)

// MergeServiceSelection trims the selected services, drops empty entries, and
// appends the optional free-text special request as the final entry.
func MergeServiceSelection(selected []string, specialRequestRaw string) []string {
	merged := make([]string, 0, len(selected)+1)
	for _, service := range selected {
		service = strings.TrimSpace(service)
		if service == "" {
			continue
		}
		merged = append(merged, service)
	}

	specialRequest := strings.TrimSpace(specialRequestRaw)
	if specialRequest != "" {
		merged = append(merged, specialRequestPrefix+specialRequest)
	}
	return merged
}

// JoinServices serializes the merged selection in its original order.
func JoinServices(services []string) string {
	return strings.Join(services, serviceListSeparator)
}

// TitleForServices picks the booking title: the first selected service, or
// the generic fallback when the list is somehow empty.
func TitleForServices(services []string) string {
	if len(services) == 0 {
		return models.DefaultAppointmentTitle
	}
	return services[0]
}

// ParseStartAt combines the date and time form fields ("2006-01-02" and
// 24-hour "15:04") into a local start timestamp.
func ParseStartAt(dateRaw string, timeRaw string, location *time.Location) (time.Time, error) {
	dateValue := strings.TrimSpace(dateRaw)
	timeValue := strings.TrimSpace(timeRaw)

	startAt, err := time.ParseInLocation(
		bookingDateLayout+" "+bookingTimeLayout,
		dateValue+" "+timeValue,
		location,
	)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return startAt, nil
}
