package lifecycle

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	LandDepartedFlights(ctx context.Context, now time.Time) (int64, error)
	CompleteLandedOrders(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// LandDepartedFlights moves every Active or Full flight whose departure has
// passed to Landed. One set-based update; running it again changes nothing.
func (r *repository) LandDepartedFlights(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Table("flights").
		Where("status IN ? AND departure_datetime < ?", []string{"Active", "Full"}, now).
		Update("status", "Landed")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to land departed flights: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CompleteLandedOrders moves every Active order whose flight has landed to
// Completed. Must run after LandDepartedFlights so orders of freshly landed
// flights complete in the same sweep.
func (r *repository) CompleteLandedOrders(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Table("flight_orders").
		Where("status = ? AND flight_id IN (?)", "Active",
			r.db.Table("flights").Select("id").Where("status = ?", "Landed")).
		Update("status", "Completed")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to complete landed orders: %w", result.Error)
	}
	return result.RowsAffected, nil
}
