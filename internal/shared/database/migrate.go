package database

import (
	"flytau/internal/auth"
	"flytau/internal/crew"
	"flytau/internal/customers"
	"flytau/internal/fleet"
	"flytau/internal/flights"
	"flytau/internal/orders"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customers.Customer{},
		&customers.RegisteredCustomer{},
		&customers.CustomerPhone{},
		&auth.Manager{},
		&fleet.Plane{},
		&fleet.PlaneClass{},
		&fleet.Seat{},
		&flights.FlightLine{},
		&flights.Flight{},
		&orders.FlightOrder{},
		&orders.Ticket{},
		&crew.Pilot{},
		&crew.FlightAttendant{},
		&crew.FlightPilotAssignment{},
		&crew.FlightAttendantAssignment{},
	)
}
