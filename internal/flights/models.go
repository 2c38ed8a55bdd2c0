package flights

import (
	"time"

	"flytau/internal/fleet"

	"github.com/google/uuid"
)

// longHaulThreshold splits routes into the two crew staffing regimes.
const longHaulThreshold = 6.0

// FlightLine is a route the airline operates, keyed by its endpoints.
// Flights can only be scheduled on existing lines.
type FlightLine struct {
	Origin        string  `json:"origin" gorm:"primaryKey;size:100"`
	Destination   string  `json:"destination" gorm:"primaryKey;size:100"`
	DurationHours float64 `json:"duration_hours" gorm:"not null;check:duration_hours > 0"`
}

// IsLongHaul reports whether the route exceeds the six hour threshold that
// drives crew size and qualification requirements.
func (fl *FlightLine) IsLongHaul() bool {
	return fl.DurationHours > longHaulThreshold
}

type Flight struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Origin            string    `json:"origin" gorm:"not null;size:100"`
	Destination       string    `json:"destination" gorm:"not null;size:100"`
	PlaneID           int       `json:"plane_id" gorm:"not null"`
	DepartureDatetime time.Time `json:"departure_datetime" gorm:"not null"`
	Status            Status    `json:"status" gorm:"type:varchar(20);default:'Active'"`
	PriceEconomy      float64   `json:"price_economy" gorm:"not null;check:price_economy >= 0"`
	PriceBusiness     *float64  `json:"price_business" gorm:"check:price_business >= 0"`
	CreatedByManager  string    `json:"created_by_manager" gorm:"not null;size:9"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// PriceFor returns the ticket price of one seat in the given class.
func (f *Flight) PriceFor(classType fleet.ClassType) (float64, bool) {
	if classType == fleet.ClassBusiness {
		if f.PriceBusiness == nil {
			return 0, false
		}
		return *f.PriceBusiness, true
	}
	return f.PriceEconomy, true
}

type AddFlightLineRequest struct {
	Origin        string  `json:"origin" binding:"required,min=2,max=100"`
	Destination   string  `json:"destination" binding:"required,min=2,max=100"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
}

type CreateFlightRequest struct {
	Origin            string   `json:"origin" binding:"required"`
	Destination       string   `json:"destination" binding:"required"`
	PlaneID           int      `json:"plane_id" binding:"required,min=1"`
	DepartureDatetime string   `json:"departure_datetime" binding:"required"`
	PriceEconomy      float64  `json:"price_economy" binding:"required,min=0"`
	PriceBusiness     *float64 `json:"price_business" binding:"omitempty,min=0"`
}

type UpdatePricesRequest struct {
	PriceEconomy  *float64 `json:"price_economy" binding:"omitempty,min=0"`
	PriceBusiness *float64 `json:"price_business" binding:"omitempty,min=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Full Landed Canceled"`
}

type SearchQuery struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	Date        string `form:"date"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Active Full Landed Canceled"`
}

type FlightSummary struct {
	ID                string    `json:"id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	PlaneID           int       `json:"plane_id"`
	PlaneSize         string    `json:"plane_size,omitempty"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	DurationHours     float64   `json:"duration_hours"`
	Status            Status    `json:"status"`
	PriceEconomy      float64   `json:"price_economy"`
	PriceBusiness     *float64  `json:"price_business,omitempty"`
}

// AvailabilityResponse partitions a flight's free and taken seats by cabin
// class.
type AvailabilityResponse struct {
	FlightID  string                        `json:"flight_id"`
	PlaneID   int                           `json:"plane_id"`
	Available map[fleet.ClassType][]string  `json:"available"`
	Occupied  map[fleet.ClassType][]string  `json:"occupied"`
}

// SeatRef is one occupied seat coordinate read back from live tickets.
type SeatRef struct {
	ClassType  fleet.ClassType `json:"class_type"`
	SeatNumber string          `json:"seat_number"`
}

// TableName specifies the table name for GORM
func (FlightLine) TableName() string {
	return "flight_lines"
}

func (Flight) TableName() string {
	return "flights"
}
