package flights

import (
	"context"
	"fmt"
	"time"

	"flytau/internal/shared/faults"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CanceledOrder reports one refunded order from a flight cancellation, for
// logging and notification fan-out.
type CanceledOrder struct {
	OrderID       uuid.UUID `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Refund        float64   `json:"refund"`
}

// flightRow is the search/list scan target joining flight, route and plane.
type flightRow struct {
	Flight
	DurationHours float64 `json:"duration_hours"`
	PlaneSize     string  `json:"plane_size"`
}

type Repository interface {
	CreateFlightLine(ctx context.Context, line *FlightLine) error
	GetFlightLine(ctx context.Context, origin, destination string) (*FlightLine, error)
	ListFlightLines(ctx context.Context) ([]FlightLine, error)
	ListAirports(ctx context.Context) ([]string, error)

	CreateFlight(ctx context.Context, flight *Flight) error
	GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error)
	Search(ctx context.Context, query SearchQuery, now time.Time) ([]FlightSummary, error)
	ListFlights(ctx context.Context, query ListQuery) ([]FlightSummary, error)

	OccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]SeatRef, error)
	UpdatePrices(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Flight, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	CancelFlightWithRefunds(ctx context.Context, flightID uuid.UUID, now time.Time, lead time.Duration) ([]CanceledOrder, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFlightLine(ctx context.Context, line *FlightLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) GetFlightLine(ctx context.Context, origin, destination string) (*FlightLine, error) {
	var line FlightLine
	err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) ListFlightLines(ctx context.Context) ([]FlightLine, error) {
	var lines []FlightLine
	err := r.db.WithContext(ctx).Order("origin ASC, destination ASC").Find(&lines).Error
	return lines, err
}

func (r *repository) ListAirports(ctx context.Context) ([]string, error) {
	var airports []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT airport FROM (
			SELECT origin AS airport FROM flight_lines
			UNION
			SELECT destination AS airport FROM flight_lines
		) endpoints
		ORDER BY airport ASC
	`).Scan(&airports).Error
	return airports, err
}

func (r *repository) CreateFlight(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *repository) GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) joinedFlights(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("flights").
		Select("flights.*, flight_lines.duration_hours, planes.size AS plane_size").
		Joins("JOIN flight_lines ON flight_lines.origin = flights.origin AND flight_lines.destination = flights.destination").
		Joins("JOIN planes ON planes.plane_id = flights.plane_id")
}

func (r *repository) Search(ctx context.Context, query SearchQuery, now time.Time) ([]FlightSummary, error) {
	db := r.joinedFlights(ctx).
		Where("flights.status = ? AND flights.departure_datetime > ?", StatusActive, now)

	if query.Origin != "" {
		db = db.Where("flights.origin = ?", query.Origin)
	}
	if query.Destination != "" {
		db = db.Where("flights.destination = ?", query.Destination)
	}
	if query.Date != "" {
		if date, err := time.Parse("2006-01-02", query.Date); err == nil {
			db = db.Where("flights.departure_datetime >= ? AND flights.departure_datetime < ?",
				date, date.Add(24*time.Hour))
		}
	}

	var rows []flightRow
	if err := db.Order("flights.departure_datetime ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSummaries(rows), nil
}

func (r *repository) ListFlights(ctx context.Context, query ListQuery) ([]FlightSummary, error) {
	db := r.joinedFlights(ctx)
	if query.Status != "" {
		db = db.Where("flights.status = ?", query.Status)
	}

	var rows []flightRow
	if err := db.Order("flights.departure_datetime ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSummaries(rows), nil
}

func toSummaries(rows []flightRow) []FlightSummary {
	summaries := make([]FlightSummary, len(rows))
	for i, row := range rows {
		summaries[i] = FlightSummary{
			ID:                row.ID.String(),
			Origin:            row.Origin,
			Destination:       row.Destination,
			PlaneID:           row.PlaneID,
			PlaneSize:         row.PlaneSize,
			DepartureDatetime: row.DepartureDatetime,
			DurationHours:     row.DurationHours,
			Status:            row.Status,
			PriceEconomy:      row.PriceEconomy,
			PriceBusiness:     row.PriceBusiness,
		}
	}
	return summaries
}

// OccupiedSeats reads the live seat claims of a flight: tickets whose parent
// order is Active or Completed. Canceled orders release their seats.
func (r *repository) OccupiedSeats(ctx context.Context, flightID uuid.UUID) ([]SeatRef, error) {
	var refs []SeatRef
	err := r.db.WithContext(ctx).Table("tickets").
		Select("tickets.class_type, tickets.seat_number").
		Joins("JOIN flight_orders ON flight_orders.id = tickets.order_id").
		Where("tickets.flight_id = ? AND flight_orders.status IN ?", flightID, []string{"Active", "Completed"}).
		Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied seats: %w", err)
	}
	return refs, nil
}

func (r *repository) UpdatePrices(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Flight, error) {
	var flight Flight
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&flight).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error; err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).Model(&Flight{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CancelFlightWithRefunds cancels a flight and fully refunds its active
// orders in one transaction. Refund amounts are read per order before the
// bulk zero-out since they depend on the pre-cancellation totals. Guests get
// no balance credit; the registered_customers update simply matches no row.
func (r *repository) CancelFlightWithRefunds(ctx context.Context, flightID uuid.UUID, now time.Time, lead time.Duration) ([]CanceledOrder, error) {
	var canceled []CanceledOrder

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight Flight
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", flightID).
			First(&flight).Error; err != nil {
			return err
		}

		if !flight.Status.Bookable() {
			return faults.InvalidState("flight in status %s cannot be canceled", flight.Status)
		}
		if flight.DepartureDatetime.Sub(now) < lead {
			return faults.TimeWindow("flights can only be canceled at least %.0f hours before departure", lead.Hours())
		}

		var orderRows []struct {
			ID            uuid.UUID
			CustomerEmail string
			TotalPayment  float64
		}
		if err := tx.Table("flight_orders").
			Select("id, customer_email, total_payment").
			Where("flight_id = ? AND status = ?", flightID, "Active").
			Scan(&orderRows).Error; err != nil {
			return fmt.Errorf("failed to load active orders: %w", err)
		}

		for _, row := range orderRows {
			if err := tx.Table("registered_customers").
				Where("email = ?", row.CustomerEmail).
				Update("balance", gorm.Expr("balance + ?", row.TotalPayment)).Error; err != nil {
				return fmt.Errorf("failed to credit refund for order %s: %w", row.ID, err)
			}
			canceled = append(canceled, CanceledOrder{
				OrderID:       row.ID,
				CustomerEmail: row.CustomerEmail,
				Refund:        row.TotalPayment,
			})
		}

		if err := tx.Table("flight_orders").
			Where("flight_id = ? AND status = ?", flightID, "Active").
			Updates(map[string]interface{}{
				"status":        "Canceled_By_Company",
				"total_payment": 0,
			}).Error; err != nil {
			return fmt.Errorf("failed to cancel orders: %w", err)
		}

		if err := tx.Table("tickets").
			Where("flight_id = ?", flightID).
			Update("canceled", true).Error; err != nil {
			return fmt.Errorf("failed to release seats: %w", err)
		}

		if err := tx.Model(&flight).Update("status", StatusCanceled).Error; err != nil {
			return fmt.Errorf("failed to cancel flight: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}
