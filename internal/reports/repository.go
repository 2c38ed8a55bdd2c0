package reports

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	GetFlightOccupancies(ctx context.Context) ([]FlightOccupancy, error)
	GetRouteRevenues(ctx context.Context) ([]RouteRevenue, error)
	GetStaffHours(ctx context.Context) ([]StaffHours, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetFlightOccupancies computes booked seats against plane capacity per
// flight. Only live tickets count as booked; canceled flights are left out
// since their tickets were all released.
func (r *repository) GetFlightOccupancies(ctx context.Context) ([]FlightOccupancy, error) {
	var occupancies []FlightOccupancy
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			f.id AS flight_id,
			f.origin,
			f.destination,
			COALESCE(t.booked, 0) AS booked,
			c.capacity,
			COALESCE(t.booked, 0)::float / c.capacity AS occupancy
		FROM flights f
		JOIN (
			SELECT plane_id, SUM(rows_count * cols_count) AS capacity
			FROM plane_classes
			GROUP BY plane_id
		) c ON c.plane_id = f.plane_id
		LEFT JOIN (
			SELECT flight_id, COUNT(*) AS booked
			FROM tickets
			WHERE NOT canceled
			GROUP BY flight_id
		) t ON t.flight_id = f.id
		WHERE f.status != 'Canceled'
		ORDER BY f.departure_datetime ASC
	`).Scan(&occupancies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute flight occupancies: %w", err)
	}
	return occupancies, nil
}

// GetRouteRevenues sums order totals per route. Canceled-by-client orders
// still contribute their retained fee because total_payment was rewritten
// to the fee at cancellation time; company cancellations were zeroed out.
func (r *repository) GetRouteRevenues(ctx context.Context) ([]RouteRevenue, error) {
	var revenues []RouteRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			f.origin,
			f.destination,
			COUNT(o.id) AS orders,
			COALESCE(SUM(o.total_payment), 0) AS revenue
		FROM flights f
		JOIN flight_orders o ON o.flight_id = f.id
		GROUP BY f.origin, f.destination
		ORDER BY revenue DESC
	`).Scan(&revenues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute route revenues: %w", err)
	}
	return revenues, nil
}

// GetStaffHours accumulates assigned flight time per crew member across
// both roles, counting only flights that actually flew.
func (r *repository) GetStaffHours(ctx context.Context) ([]StaffHours, error) {
	var hours []StaffHours
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id_number,
			p.first_name,
			p.last_name,
			'pilot' AS role,
			COUNT(f.id) AS flights,
			COALESCE(SUM(fl.duration_hours), 0) AS total_hours
		FROM pilots p
		LEFT JOIN flight_pilot_assignments a ON a.pilot_id = p.id_number
		LEFT JOIN flights f ON f.id = a.flight_id AND f.status = 'Landed'
		LEFT JOIN flight_lines fl ON fl.origin = f.origin AND fl.destination = f.destination
		GROUP BY p.id_number, p.first_name, p.last_name

		UNION ALL

		SELECT
			fa.id_number,
			fa.first_name,
			fa.last_name,
			'attendant' AS role,
			COUNT(f.id) AS flights,
			COALESCE(SUM(fl.duration_hours), 0) AS total_hours
		FROM flight_attendants fa
		LEFT JOIN flight_attendant_assignments a ON a.attendant_id = fa.id_number
		LEFT JOIN flights f ON f.id = a.flight_id AND f.status = 'Landed'
		LEFT JOIN flight_lines fl ON fl.origin = f.origin AND fl.destination = f.destination
		GROUP BY fa.id_number, fa.first_name, fa.last_name

		ORDER BY total_hours DESC
	`).Scan(&hours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute staff hours: %w", err)
	}
	return hours, nil
}
