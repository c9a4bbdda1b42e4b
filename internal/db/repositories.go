package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Appointments *AppointmentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Appointments: NewAppointmentRepository(database),
	}
}
