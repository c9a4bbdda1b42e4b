package services

import (
	"errors"
	"testing"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"gorm.io/gorm"
)

// fakeAppointmentStore mirrors the repository contract in memory, including
// gorm's not-found sentinel, so service semantics are tested without a
// database.
type fakeAppointmentStore struct {
	nextID         uint
	appointments   map[uint]models.Appointment
	loseCancelRace bool
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[uint]models.Appointment)}
}

func (store *fakeAppointmentStore) Create(appointment *models.Appointment) error {
	store.nextID++
	appointment.ID = store.nextID
	store.appointments[appointment.ID] = *appointment
	return nil
}

func (store *fakeAppointmentStore) FindByID(appointmentID uint) (models.Appointment, error) {
	appointment, ok := store.appointments[appointmentID]
	if !ok {
		return models.Appointment{}, gorm.ErrRecordNotFound
	}
	return appointment, nil
}

func (store *fakeAppointmentStore) FindByIDAndOwner(appointmentID uint, ownerID uint) (models.Appointment, error) {
	appointment, ok := store.appointments[appointmentID]
	if !ok || appointment.UserID != ownerID {
		return models.Appointment{}, gorm.ErrRecordNotFound
	}
	return appointment, nil
}

func (store *fakeAppointmentStore) ListByOwner(ownerID uint) ([]models.Appointment, error) {
	owned := make([]models.Appointment, 0)
	for _, appointment := range store.appointments {
		if appointment.UserID == ownerID {
			owned = append(owned, appointment)
		}
	}
	return owned, nil
}

func (store *fakeAppointmentStore) ListInRange(startInclusive time.Time, endExclusive time.Time, ownerID *uint) ([]models.Appointment, error) {
	matched := make([]models.Appointment, 0)
	for _, appointment := range store.appointments {
		if appointment.StartAt.Before(startInclusive) || !appointment.StartAt.Before(endExclusive) {
			continue
		}
		if ownerID != nil && appointment.UserID != *ownerID {
			continue
		}
		matched = append(matched, appointment)
	}
	return matched, nil
}

func (store *fakeAppointmentStore) MarkCanceled(appointmentID uint) (bool, error) {
	appointment, ok := store.appointments[appointmentID]
	if !ok || appointment.Canceled || store.loseCancelRace {
		return false, nil
	}
	appointment.Canceled = true
	store.appointments[appointmentID] = appointment
	return true, nil
}

func (store *fakeAppointmentStore) Delete(appointmentID uint) (bool, error) {
	if _, ok := store.appointments[appointmentID]; !ok {
		return false, nil
	}
	delete(store.appointments, appointmentID)
	return true, nil
}

func newBookingServiceForTest() (*BookingService, *fakeAppointmentStore) {
	store := newFakeAppointmentStore()
	return NewBookingService(store, time.UTC), store
}

func TestBookingCreatePersistsMergedSelection(t *testing.T) {
	service, store := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut", "Color"}, "near window", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	if appointment.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if appointment.Title != "Haircut" {
		t.Fatalf("expected title from first service, got %q", appointment.Title)
	}
	if appointment.Services != "Haircut, Color, Special Request: near window" {
		t.Fatalf("unexpected services: %q", appointment.Services)
	}
	expectedStart := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	if !appointment.StartAt.Equal(expectedStart) {
		t.Fatalf("expected start %v, got %v", expectedStart, appointment.StartAt)
	}
	if appointment.Canceled {
		t.Fatal("expected a fresh appointment to be active")
	}

	stored, err := store.FindByID(appointment.ID)
	if err != nil {
		t.Fatalf("find stored appointment: %v", err)
	}
	if stored.UserID != 7 {
		t.Fatalf("expected owner 7, got %d", stored.UserID)
	}
}

func TestBookingCreateRejectsEmptySelection(t *testing.T) {
	service, store := newBookingServiceForTest()

	if _, err := service.Create(7, nil, "   ", "2024-03-15", "14:30"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty selection, got %v", err)
	}
	if _, err := service.Create(7, []string{"Haircut"}, "", "not-a-date", "14:30"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
	if len(store.appointments) != 0 {
		t.Fatalf("expected nothing persisted, got %d records", len(store.appointments))
	}
}

func TestSoftCancelTransitionsExactlyOnce(t *testing.T) {
	service, _ := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	canceled, alreadyCanceled, err := service.SoftCancel(appointment.ID, 7, models.RoleUser)
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if alreadyCanceled {
		t.Fatal("expected first cancel to transition")
	}
	if !canceled.Canceled {
		t.Fatal("expected returned record to be canceled")
	}

	_, alreadyCanceled, err = service.SoftCancel(appointment.ID, 7, models.RoleUser)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if !alreadyCanceled {
		t.Fatal("expected second cancel to report already canceled")
	}
}

func TestSoftCancelHidesOtherOwnersRecords(t *testing.T) {
	service, _ := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	if _, _, err := service.SoftCancel(appointment.ID, 8, models.RoleUser); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected foreign record to look absent, got %v", err)
	}
	if _, _, err := service.SoftCancel(999, 7, models.RoleUser); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing record to report ErrNotFound, got %v", err)
	}
}

func TestSoftCancelBossReachesAnyOwner(t *testing.T) {
	service, _ := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	canceled, alreadyCanceled, err := service.SoftCancel(appointment.ID, 1, models.RoleBoss)
	if err != nil {
		t.Fatalf("boss cancel: %v", err)
	}
	if alreadyCanceled {
		t.Fatal("expected boss cancel to transition")
	}
	if canceled.UserID != 7 {
		t.Fatalf("expected canceled record to keep its owner, got %d", canceled.UserID)
	}
}

func TestSoftCancelTreatsLostRaceAsAlreadyCanceled(t *testing.T) {
	service, store := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	store.loseCancelRace = true
	_, alreadyCanceled, err := service.SoftCancel(appointment.ID, 7, models.RoleUser)
	if err != nil {
		t.Fatalf("racing cancel: %v", err)
	}
	if !alreadyCanceled {
		t.Fatal("expected a lost conditional update to report already canceled")
	}
}

func TestHardDeleteRemovesRecordAndReportsMissing(t *testing.T) {
	service, store := newBookingServiceForTest()

	appointment, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30")
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	if err := service.HardDelete(appointment.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if _, ok := store.appointments[appointment.ID]; ok {
		t.Fatal("expected record to be removed")
	}
	if err := service.HardDelete(appointment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected second delete to report ErrNotFound, got %v", err)
	}
}

func TestListInRangeHonorsScope(t *testing.T) {
	service, _ := newBookingServiceForTest()

	if _, err := service.Create(7, []string{"Haircut"}, "", "2024-03-15", "14:30"); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if _, err := service.Create(8, []string{"Color"}, "", "2024-03-20", "10:00"); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if _, err := service.Create(7, []string{"Manicure"}, "", "2024-04-01", "10:00"); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	start, end := MonthBounds(2024, 3, time.UTC)

	all, err := service.ListInRange(start, end, ScopeForAllOwners())
	if err != nil {
		t.Fatalf("list all owners: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 March appointments for all owners, got %d", len(all))
	}

	own, err := service.ListInRange(start, end, ScopeForOwner(7))
	if err != nil {
		t.Fatalf("list owner: %v", err)
	}
	if len(own) != 1 || own[0].UserID != 7 {
		t.Fatalf("expected only owner 7's March appointment, got %#v", own)
	}
}
