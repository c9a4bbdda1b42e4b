package models

import "time"

// DefaultAppointmentTitle is used when a booking somehow carries no services.
const DefaultAppointmentTitle = "Appointment"

type Appointment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Title     string    `gorm:"not null;default:Appointment"`
	StartAt   time.Time `gorm:"index;not null"`
	Notes     string
	// Ordered, comma-separated service names; an optional special request is
	// appended last as "Special Request: <text>".
	Services  string
	Canceled  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
