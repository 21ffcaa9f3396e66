package users

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which parts of the fleet console a user can reach.
type Role string

const (
	// RoleAdmin owns the fleet: buses, routes, trips, employees, finances.
	RoleAdmin Role = "ADMIN"
	// RoleManager runs day-to-day operations for assigned buses.
	RoleManager Role = "MANAGER"
	// RoleAgent sells tickets and earns commission on confirmed bookings.
	RoleAgent Role = "AGENT"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'AGENT'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleAdmin), string(RoleManager), string(RoleAgent):
		return true
	default:
		return false
	}
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
