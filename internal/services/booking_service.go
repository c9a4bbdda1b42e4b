package services

import (
	"errors"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"gorm.io/gorm"
)

type BookingAppointmentRepository interface {
	Create(appointment *models.Appointment) error
	FindByID(appointmentID uint) (models.Appointment, error)
	FindByIDAndOwner(appointmentID uint, ownerID uint) (models.Appointment, error)
	ListByOwner(ownerID uint) ([]models.Appointment, error)
	ListInRange(startInclusive time.Time, endExclusive time.Time, ownerID *uint) ([]models.Appointment, error)
	MarkCanceled(appointmentID uint) (bool, error)
	Delete(appointmentID uint) (bool, error)
}

type BookingService struct {
	appointments BookingAppointmentRepository
	location     *time.Location
}

func NewBookingService(appointments BookingAppointmentRepository, location *time.Location) *BookingService {
	if location == nil {
		location = time.Local
	}
	return &BookingService{appointments: appointments, location: location}
}

// Create books an appointment from the raw form selection. The merged service
// list must be non-empty and the date/time fields must parse as a local
// date-time; both failures report ErrInvalidInput.
func (service *BookingService) Create(ownerID uint, selectedServices []string, specialRequest string, dateRaw string, timeRaw string) (models.Appointment, error) {
	merged := MergeServiceSelection(selectedServices, specialRequest)
	if len(merged) == 0 {
		return models.Appointment{}, ErrInvalidInput
	}

	startAt, err := ParseStartAt(dateRaw, timeRaw, service.location)
	if err != nil {
		return models.Appointment{}, err
	}

	appointment := models.Appointment{
		UserID:   ownerID,
		Title:    TitleForServices(merged),
		StartAt:  startAt,
		Services: JoinServices(merged),
	}
	if err := service.appointments.Create(&appointment); err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

// ListForOwner returns the owner's appointments, canceled included, ordered
// by start time ascending.
func (service *BookingService) ListForOwner(ownerID uint) ([]models.Appointment, error) {
	return service.appointments.ListByOwner(ownerID)
}

// ListInRange returns appointments starting in [startInclusive, endExclusive)
// limited to the given visibility scope.
func (service *BookingService) ListInRange(startInclusive time.Time, endExclusive time.Time, scope VisibilityScope) ([]models.Appointment, error) {
	return service.appointments.ListInRange(startInclusive, endExclusive, scope.OwnerID())
}

// SoftCancel marks an appointment canceled on behalf of the requester. A
// record that does not exist, or that belongs to someone else when the
// requester is not a boss, reports ErrNotFound, so ownership is never
// distinguishable from absence. Canceling an already-canceled appointment is
// a no-op with alreadyCanceled=true. The returned record reflects the
// canceled state so boss callers can compose a notification from it.
func (service *BookingService) SoftCancel(appointmentID uint, requesterID uint, requesterRole models.Role) (models.Appointment, bool, error) {
	var appointment models.Appointment
	var err error
	if requesterRole.CanSeeAllAppointments() {
		appointment, err = service.appointments.FindByID(appointmentID)
	} else {
		appointment, err = service.appointments.FindByIDAndOwner(appointmentID, requesterID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, false, ErrNotFound
		}
		return models.Appointment{}, false, err
	}

	if appointment.Canceled {
		return appointment, true, nil
	}

	transitioned, err := service.appointments.MarkCanceled(appointment.ID)
	if err != nil {
		return models.Appointment{}, false, err
	}
	appointment.Canceled = true
	if !transitioned {
		// A concurrent cancel won the conditional update.
		return appointment, true, nil
	}
	return appointment, false, nil
}

// HardDelete permanently removes an appointment. Reachable only from
// boss-gated handlers.
func (service *BookingService) HardDelete(appointmentID uint) error {
	deleted, err := service.appointments.Delete(appointmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
