package database

import (
	"busexpress/internal/agents"
	"busexpress/internal/bookings"
	"busexpress/internal/employees"
	"busexpress/internal/expenses"
	"busexpress/internal/fleet"
	"busexpress/internal/routes"
	"busexpress/internal/trips"
	"busexpress/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&fleet.Bus{},
		&routes.Route{},
		&routes.BoardingPoint{},
		&trips.Trip{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&employees.Employee{},
		&agents.Agent{},
		&expenses.Expense{},
	); err != nil {
		return err
	}

	return MigrateConstraints(db)
}
