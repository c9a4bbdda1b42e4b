package db

import (
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	database *gorm.DB
}

func NewAppointmentRepository(database *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{database: database}
}

func (repo *AppointmentRepository) Create(appointment *models.Appointment) error {
	return repo.database.Create(appointment).Error
}

func (repo *AppointmentRepository) FindByID(appointmentID uint) (models.Appointment, error) {
	var appointment models.Appointment
	if err := repo.database.First(&appointment, appointmentID).Error; err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

func (repo *AppointmentRepository) FindByIDAndOwner(appointmentID uint, ownerID uint) (models.Appointment, error) {
	var appointment models.Appointment
	if err := repo.database.
		Where("id = ? AND user_id = ?", appointmentID, ownerID).
		First(&appointment).Error; err != nil {
		return models.Appointment{}, err
	}
	return appointment, nil
}

// ListByOwner returns every appointment for one owner, canceled included,
// ordered by start time ascending.
func (repo *AppointmentRepository) ListByOwner(ownerID uint) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	if err := repo.database.
		Where("user_id = ?", ownerID).
		Order("start_at ASC, id ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListInRange returns appointments whose start falls in [startInclusive,
// endExclusive), ordered ascending. A nil ownerID means all owners.
func (repo *AppointmentRepository) ListInRange(startInclusive time.Time, endExclusive time.Time, ownerID *uint) ([]models.Appointment, error) {
	query := repo.database.
		Where("start_at >= ? AND start_at < ?", startInclusive, endExclusive)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	appointments := make([]models.Appointment, 0)
	if err := query.Order("start_at ASC, id ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// MarkCanceled flips canceled with a conditional update so that two racing
// cancels of the same row serialize to exactly one effective transition. It
// reports whether this call performed the transition.
func (repo *AppointmentRepository) MarkCanceled(appointmentID uint) (bool, error) {
	result := repo.database.Model(&models.Appointment{}).
		Where("id = ? AND canceled = ?", appointmentID, false).
		Update("canceled", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *AppointmentRepository) Delete(appointmentID uint) (bool, error) {
	result := repo.database.Delete(&models.Appointment{}, appointmentID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
