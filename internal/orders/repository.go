package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flytau/internal/customers"
	"flytau/internal/fleet"
	"flytau/internal/flights"
	"flytau/internal/shared/faults"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CancelResult reports the monetary outcome of an order cancellation.
type CancelResult struct {
	Order  *FlightOrder
	Fee    float64
	Refund float64
}

type Repository interface {
	CreateOrderWithSeatClaims(ctx context.Context, order *FlightOrder, guest *customers.Customer) error
	GetOrder(ctx context.Context, id uuid.UUID) (*FlightOrder, error)
	ListByCustomer(ctx context.Context, email string, status Status, activeOnly bool) ([]FlightOrder, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, now time.Time, lead time.Duration, feeRate float64) (*CancelResult, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateOrderWithSeatClaims commits a booking as one serializable unit: the
// flight row is locked, availability is re-checked under the lock, the guest
// identity is created if needed, and the order with its tickets is inserted.
// The partial unique index on live tickets backstops any race the lock does
// not cover. A booking that fills the last seat flips the flight to Full;
// Full never auto-reverts.
func (r *repository) CreateOrderWithSeatClaims(ctx context.Context, order *FlightOrder, guest *customers.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight flights.Flight
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", order.FlightID).
			First(&flight).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return faults.NotFound("flight %s not found", order.FlightID)
			}
			return err
		}

		if !flight.Status.Bookable() {
			return faults.InvalidState("flight %s is not open for booking", order.FlightID)
		}

		if guest != nil {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(guest).Error; err != nil {
				return fmt.Errorf("failed to create guest customer: %w", err)
			}
		}

		occupied, err := occupiedSet(tx, order.FlightID)
		if err != nil {
			return err
		}
		for _, ticket := range order.Tickets {
			if _, taken := occupied[fleet.SeatKey(ticket.ClassType, ticket.SeatNumber)]; taken {
				return faults.SeatConflict("seat %s (%s) is already taken", ticket.SeatNumber, ticket.ClassType)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			if isUniqueViolation(err) {
				return faults.SeatConflict("seat was claimed by a concurrent booking")
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		booked, err := bookedCount(tx, order.FlightID)
		if err != nil {
			return err
		}
		capacity, err := planeCapacity(tx, flight.PlaneID)
		if err != nil {
			return err
		}
		if booked >= capacity && flight.Status == flights.StatusActive {
			if err := tx.Model(&flight).Update("status", flights.StatusFull).Error; err != nil {
				return fmt.Errorf("failed to mark flight full: %w", err)
			}
		}
		return nil
	})
}

func occupiedSet(tx *gorm.DB, flightID uuid.UUID) (map[string]struct{}, error) {
	var refs []struct {
		ClassType  fleet.ClassType
		SeatNumber string
	}
	err := tx.Table("tickets").
		Select("tickets.class_type, tickets.seat_number").
		Joins("JOIN flight_orders ON flight_orders.id = tickets.order_id").
		Where("tickets.flight_id = ? AND flight_orders.status IN ?",
			flightID, []string{string(StatusActive), string(StatusCompleted)}).
		Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied seats: %w", err)
	}

	set := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		set[fleet.SeatKey(ref.ClassType, ref.SeatNumber)] = struct{}{}
	}
	return set, nil
}

func bookedCount(tx *gorm.DB, flightID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Table("tickets").
		Joins("JOIN flight_orders ON flight_orders.id = tickets.order_id").
		Where("tickets.flight_id = ? AND flight_orders.status IN ?",
			flightID, []string{string(StatusActive), string(StatusCompleted)}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count booked seats: %w", err)
	}
	return count, nil
}

func planeCapacity(tx *gorm.DB, planeID int) (int64, error) {
	var capacity int64
	err := tx.Table("plane_classes").
		Select("COALESCE(SUM(rows_count * cols_count), 0)").
		Where("plane_id = ?", planeID).
		Scan(&capacity).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute plane capacity: %w", err)
	}
	return capacity, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

func (r *repository) GetOrder(ctx context.Context, id uuid.UUID) (*FlightOrder, error) {
	var order FlightOrder
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders joined with their flights,
// soonest departure first.
func (r *repository) ListByCustomer(ctx context.Context, email string, status Status, activeOnly bool) ([]FlightOrder, error) {
	db := r.db.WithContext(ctx).
		Preload("Tickets").
		Joins("JOIN flights ON flights.id = flight_orders.flight_id").
		Where("flight_orders.customer_email = ?", email)

	if activeOnly {
		db = db.Where("flight_orders.status = ?", StatusActive)
	} else if status != "" {
		db = db.Where("flight_orders.status = ?", status)
	}

	var orders []FlightOrder
	err := db.Order("flights.departure_datetime ASC").Find(&orders).Error
	return orders, err
}

// CancelOrder applies the customer cancellation policy in one transaction:
// the fee stays on the order as its recorded value, the rest is refunded to
// the registered balance, and the tickets release their seats. Guests have
// no balance row, so the credit update matches nothing for them.
func (r *repository) CancelOrder(ctx context.Context, orderID uuid.UUID, now time.Time, lead time.Duration, feeRate float64) (*CancelResult, error) {
	var result CancelResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order FlightOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", orderID).
			First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return faults.NotFound("order %s not found", orderID)
			}
			return err
		}

		if order.Status != StatusActive {
			return faults.InvalidState("order in status %s cannot be canceled", order.Status)
		}

		var flight flights.Flight
		if err := tx.Where("id = ?", order.FlightID).First(&flight).Error; err != nil {
			return fmt.Errorf("failed to load flight: %w", err)
		}
		if !MeetsCancellationLead(flight.DepartureDatetime, now, lead) {
			return faults.TimeWindow("orders can only be canceled at least %.0f hours before departure", lead.Hours())
		}

		fee, refund := CancellationBreakdown(order.TotalPayment, feeRate)

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status":        StatusCanceledByClient,
			"total_payment": fee,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		if err := tx.Model(&Ticket{}).
			Where("order_id = ?", orderID).
			Update("canceled", true).Error; err != nil {
			return fmt.Errorf("failed to release seats: %w", err)
		}

		if err := tx.Table("registered_customers").
			Where("email = ?", order.CustomerEmail).
			Update("balance", gorm.Expr("balance + ?", refund)).Error; err != nil {
			return fmt.Errorf("failed to credit refund: %w", err)
		}

		order.Status = StatusCanceledByClient
		order.TotalPayment = fee
		result = CancelResult{Order: &order, Fee: fee, Refund: refund}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
