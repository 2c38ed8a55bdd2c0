package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Partial unique index preventing double booking: a live seat claim is
	// unique per (flight, plane, class, seat number). Canceled tickets fall
	// out of the index so freed seats can be rebooked.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_live_seat_claim
		ON tickets (flight_id, plane_id, class_type, seat_number)
		WHERE NOT canceled;
	`).Error
	if err != nil {
		return err
	}

	// Index for occupied-seat queries by flight
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_flight_id
		ON tickets (flight_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for the lifecycle sweeps over departed flights
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flights_status_departure
		ON flights (status, departure_datetime);
	`).Error
	if err != nil {
		return err
	}

	// Index for order listings per customer
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flight_orders_customer_email
		ON flight_orders (customer_email);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
