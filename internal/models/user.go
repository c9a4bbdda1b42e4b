package models

import "time"

// Role is the closed set of access roles. The boss role is never granted
// through any HTTP route; it is provisioned with the promote CLI command.
type Role string

const (
	RoleUser Role = "user"
	RoleBoss Role = "boss"
)

// CanSeeAllAppointments reports whether the role's calendar scope spans every
// owner rather than just the viewer's own bookings.
func (role Role) CanSeeAllAppointments() bool {
	return role == RoleBoss
}

// CanBook reports whether the role may use the customer-facing booking flows.
// Bosses are calendar-only and are redirected away from those routes.
func (role Role) CanBook() bool {
	return role == RoleUser
}

func (role Role) Valid() bool {
	return role == RoleUser || role == RoleBoss
}

type User struct {
	ID           uint      `gorm:"primaryKey"`
	FullName     string    `gorm:"index;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"not null;default:user"`
	Phone        string
	CreatedAt    time.Time `gorm:"not null"`
}
